// Package region toggles the reversible editing transform over a card:
// three sentinel marker lines bracket the card while answer prefixes
// are stripped, and on exit the prefixes are restored and the markers
// removed. Marker presence in the document is the only editing-mode
// state; there is no separate flag to fall out of sync.
package region

import (
	"errors"
	"strings"
)

var (
	// ErrAlreadyEditing guards Enter: at most one marker region may exist.
	ErrAlreadyEditing = errors.New("document already has an editing region")
	// ErrNotEditing guards Exit: there is no marker region to close.
	ErrNotEditing = errors.New("document has no editing region")
)

// Markers holds the three sentinel substrings. A line belongs to a
// marker if it contains the sentinel anywhere, so markers survive
// comment wrapping or indentation added around them.
type Markers struct {
	EditStart   string
	AnswerStart string
	EditEnd     string
}

// DefaultMarkers returns the stock sentinel set.
func DefaultMarkers() Markers {
	return Markers{
		EditStart:   "<!-- deckle:begin -->",
		AnswerStart: "<!-- deckle:answers -->",
		EditEnd:     "<!-- deckle:end -->",
	}
}

// Region records where the sentinel lines sit in a document.
type Region struct {
	Start       int // line containing the edit-start sentinel
	AnswerStart int // line containing the answer-start sentinel, -1 if absent
	End         int // line containing the edit-end sentinel
}

// Toggler applies and reverses the editing transform using one marker set.
type Toggler struct {
	markers Markers
}

// NewToggler builds a Toggler. Empty sentinel fields fall back to the
// defaults so a partially filled config section stays usable.
func NewToggler(m Markers) *Toggler {
	def := DefaultMarkers()
	if m.EditStart == "" {
		m.EditStart = def.EditStart
	}
	if m.AnswerStart == "" {
		m.AnswerStart = def.AnswerStart
	}
	if m.EditEnd == "" {
		m.EditEnd = def.EditEnd
	}
	return &Toggler{markers: m}
}

// Markers returns the sentinel set in use.
func (t *Toggler) Markers() Markers { return t.markers }

// IsEditing reports whether any line carries the edit-start sentinel.
func (t *Toggler) IsEditing(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, t.markers.EditStart) {
			return true
		}
	}
	return false
}

// FindRegion scans forward once, recording the first line containing
// each sentinel. A region needs both the start and end markers; the
// answer marker is legitimately absent for answer-less cards. Malformed
// documents (say, a lone start marker) report no region rather than a
// guess at a partial one.
func (t *Toggler) FindRegion(lines []string) (Region, bool) {
	r := Region{Start: -1, AnswerStart: -1, End: -1}
	for i, line := range lines {
		if r.Start < 0 && strings.Contains(line, t.markers.EditStart) {
			r.Start = i
		}
		if r.AnswerStart < 0 && strings.Contains(line, t.markers.AnswerStart) {
			r.AnswerStart = i
		}
		if r.End < 0 && strings.Contains(line, t.markers.EditEnd) {
			r.End = i
		}
	}
	if r.Start < 0 || r.End < 0 {
		return Region{}, false
	}
	return r, true
}

// IsMarkerLine reports whether line carries any of the three sentinels.
func (t *Toggler) IsMarkerLine(line string) bool {
	return strings.Contains(line, t.markers.EditStart) ||
		strings.Contains(line, t.markers.AnswerStart) ||
		strings.Contains(line, t.markers.EditEnd)
}
