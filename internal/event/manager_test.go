package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrderAndConsumption(t *testing.T) {
	m := NewManager()

	var calls []string
	m.Subscribe(TypeEditEntered, func(e Event) bool {
		calls = append(calls, "first")
		return true // consume
	})
	m.Subscribe(TypeEditEntered, func(e Event) bool {
		calls = append(calls, "second")
		return false
	})

	m.Dispatch(TypeEditEntered, EditEnteredData{})
	assert.Equal(t, []string{"first"}, calls, "consumed event stops later handlers")
}

func TestDispatchNoHandlers(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() {
		m.Dispatch(TypeAppQuit, AppQuitData{})
	})
}

func TestDispatchCarriesData(t *testing.T) {
	m := NewManager()

	var got BufferSavedData
	m.Subscribe(TypeBufferSaved, func(e Event) bool {
		data, ok := e.Data.(BufferSavedData)
		if ok {
			got = data
		}
		return false
	})

	m.Dispatch(TypeBufferSaved, BufferSavedData{FilePath: "notes.md"})
	assert.Equal(t, "notes.md", got.FilePath)
}
