package event

import "github.com/okvist/deckle/internal/card"

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferLoaded // fired after a document is loaded into the buffer
	TypeBufferSaved  // fired after the buffer is written to disk
	TypeEditEntered  // fired when a card's editing region is opened
	TypeEditExited   // fired when the editing region is closed
	TypeCardYanked   // fired when a card's text is copied
	TypeCursorMoved  // fired when the viewer cursor changes line

	TypeAppQuit // fired just before the application terminates
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferLoadedData describes the loaded document.
type BufferLoadedData struct {
	FilePath  string
	LineCount int
}

// BufferSavedData describes the saved document.
type BufferSavedData struct {
	FilePath string
}

// EditEnteredData carries the card whose region was opened.
type EditEnteredData struct {
	Card card.Card
}

// EditExitedData is fired after prefixes are restored and markers removed.
type EditExitedData struct{}

// CardYankedData reports how much of a card was copied.
type CardYankedData struct {
	Card      card.Card
	LineCount int
}

// CursorMovedData carries the new viewer position.
type CursorMovedData struct {
	Line int
	Col  int
}

// AppQuitData could carry an exit reason later.
type AppQuitData struct{}
