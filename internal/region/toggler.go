package region

import (
	"regexp"
	"strings"

	"github.com/okvist/deckle/internal/card"
)

// prefixRe is the exact portion Strip removes: leading whitespace, the
// quote character, and at most one following space. Removing only one
// space is what makes the transform reversible: `>  x` strips to ` x`,
// which no longer matches the answer pattern, so Apply restores the
// full `>  x`.
var prefixRe = regexp.MustCompile(`^\s*> ?`)

// Enter detects the card around lines[idx], brackets it with the three
// sentinel lines, and strips the answer prefixes between the answer and
// end markers. It returns a new line slice; on any error the input is
// left untouched, so the operation is atomic from the caller's side.
func (t *Toggler) Enter(lines []string, idx int) ([]string, error) {
	if t.IsEditing(lines) {
		return nil, ErrAlreadyEditing
	}

	c, err := card.Find(lines, idx)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(lines), len(lines)+3)
	copy(out, lines)

	// Insert from the highest index down so earlier insertions cannot
	// shift the remaining targets, which were computed against the
	// pre-insertion document.
	out = insertLine(out, c.End+1, t.markers.EditEnd)
	if c.HasAnswer() {
		out = insertLine(out, c.AnswerStart, t.markers.AnswerStart)
	}
	out = insertLine(out, c.Start, t.markers.EditStart)

	t.Strip(out)
	return out, nil
}

// Exit restores the answer prefixes inside the marker region and then
// deletes every sentinel line. Prefixes go back first because Apply
// locates its range by re-finding the markers. Returns a new slice;
// ErrNotEditing leaves the input untouched.
func (t *Toggler) Exit(lines []string) ([]string, error) {
	if _, ok := t.FindRegion(lines); !ok {
		return nil, ErrNotEditing
	}

	out := make([]string, len(lines))
	copy(out, lines)

	t.Apply(out)

	var marks []int
	for i, line := range out {
		if t.IsMarkerLine(line) {
			marks = append(marks, i)
		}
	}
	for i := len(marks) - 1; i >= 0; i-- {
		out = append(out[:marks[i]], out[marks[i]+1:]...)
	}
	return out, nil
}

// Strip removes the answer prefix from every line strictly between the
// answer-start and edit-end markers, in place. A line whose remainder
// is all whitespace becomes truly empty, never a leftover bare `>`.
// Reports whether anything changed; a document without a region or
// without the answer marker is left alone.
func (t *Toggler) Strip(lines []string) bool {
	r, ok := t.FindRegion(lines)
	if !ok || r.AnswerStart < 0 {
		return false
	}

	changed := false
	for i := r.AnswerStart + 1; i < r.End && i < len(lines); i++ {
		if !card.IsAnswer(lines[i]) {
			continue
		}
		rest := prefixRe.ReplaceAllString(lines[i], "")
		if strings.TrimSpace(rest) == "" {
			rest = ""
		}
		if rest != lines[i] {
			lines[i] = rest
			changed = true
		}
	}
	return changed
}

// Apply is Strip's inverse: every line strictly between the answer-start
// and edit-end markers that does not already carry the answer prefix
// gets `"> "` prepended, in place. An empty line becomes exactly `"> "`.
// Running Apply twice changes nothing after the first pass.
func (t *Toggler) Apply(lines []string) bool {
	r, ok := t.FindRegion(lines)
	if !ok || r.AnswerStart < 0 {
		return false
	}

	changed := false
	for i := r.AnswerStart + 1; i < r.End && i < len(lines); i++ {
		if card.IsAnswer(lines[i]) {
			continue
		}
		lines[i] = "> " + lines[i]
		changed = true
	}
	return changed
}

// insertLine places line at index i, shifting the tail down.
func insertLine(lines []string, i int, line string) []string {
	if i < 0 {
		i = 0
	}
	if i > len(lines) {
		i = len(lines)
	}
	lines = append(lines, "")
	copy(lines[i+1:], lines[i:])
	lines[i] = line
	return lines
}
