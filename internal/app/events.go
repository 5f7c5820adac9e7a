package app

import (
	"github.com/okvist/deckle/internal/event"
	"github.com/okvist/deckle/internal/logger"
)

// subscribeStatusHandlers wires bus events into status bar updates.
func (a *App) subscribeStatusHandlers() {
	a.eventManager.Subscribe(event.TypeBufferLoaded, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferLoadedData); ok {
			a.statusBar.SetFileInfo(data.FilePath, false)
			logger.Debugf("App: loaded %q (%d lines)", data.FilePath, data.LineCount)
		}
		return false
	})

	a.eventManager.Subscribe(event.TypeBufferSaved, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferSavedData); ok {
			a.statusBar.SetTemporaryMessage("Saved %s", data.FilePath)
		}
		return false
	})

	a.eventManager.Subscribe(event.TypeEditEntered, func(e event.Event) bool {
		a.statusBar.SetEditing(true)
		if data, ok := e.Data.(event.EditEnteredData); ok {
			a.statusBar.SetTemporaryMessage("Editing card at lines %d-%d",
				data.Card.Start+1, data.Card.End+1)
		}
		return false
	})

	a.eventManager.Subscribe(event.TypeEditExited, func(e event.Event) bool {
		a.statusBar.SetEditing(false)
		a.statusBar.SetTemporaryMessage("Editing region closed")
		return false
	})

	a.eventManager.Subscribe(event.TypeCardYanked, func(e event.Event) bool {
		if data, ok := e.Data.(event.CardYankedData); ok {
			a.statusBar.SetTemporaryMessage("Yanked %d lines", data.LineCount)
		}
		return false
	})

	a.eventManager.Subscribe(event.TypeCursorMoved, func(e event.Event) bool {
		if data, ok := e.Data.(event.CursorMovedData); ok {
			a.statusBar.SetCursorInfo(data.Line, data.Col)
		}
		return false
	})
}
