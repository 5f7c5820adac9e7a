// Package card locates flashcards inside a line-oriented document.
// All indices are 0-based; callers presenting 1-based line numbers
// convert at the edge.
package card

import "errors"

var (
	// ErrNotInSection means the queried line is outside any `---` fenced section.
	ErrNotInSection = errors.New("line is not inside a section")
	// ErrNoQuestion means no numbered question was found above the queried line.
	ErrNoQuestion = errors.New("no question found above line")
)

// Card is the line range of one question/answer unit.
type Card struct {
	Start       int // first line of the card; the ID comment when present, else the question
	Question    int // line holding the numbered question
	AnswerStart int // first answer line, -1 when the card has no answer block
	End         int // last line belonging to the card
}

// HasAnswer reports whether the card has an answer block.
func (c Card) HasAnswer() bool { return c.AnswerStart >= 0 }

// Contains reports whether idx falls inside the card's range.
func (c Card) Contains(idx int) bool { return idx >= c.Start && idx <= c.End }
