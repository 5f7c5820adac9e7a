package card

import "fmt"

// endLookahead is how many lines past a blank line the end-of-card scan
// checks for a continuing answer. Answers separated by more than this
// many non-answer lines are treated as the next paragraph of the
// document, which can truncate long multi-paragraph answers; kept for
// compatibility with existing decks.
const endLookahead = 3

// InsideSection reports whether lines[idx] lies strictly between a pair
// of `---` delimiters. The flag flips at every delimiter scanned from
// the top of the document; a delimiter line is never inside its own
// section.
func InsideSection(lines []string, idx int) bool {
	if idx < 0 || idx >= len(lines) {
		return false
	}
	inside := false
	for i := 0; i <= idx; i++ {
		if IsDelimiter(lines[i]) {
			if i == idx {
				return false
			}
			inside = !inside
		}
	}
	return inside
}

// Find computes the card enclosing lines[idx]. The document is scanned
// fresh on every call; Find never mutates lines and repeated calls with
// the same input return identical bounds.
func Find(lines []string, idx int) (Card, error) {
	if !InsideSection(lines, idx) {
		return Card{}, fmt.Errorf("line %d: %w", idx+1, ErrNotInSection)
	}

	q := findQuestionAbove(lines, idx)
	if q < 0 {
		return Card{}, fmt.Errorf("line %d: %w", idx+1, ErrNoQuestion)
	}

	start := q
	if q > 0 && IsIDComment(lines[q-1]) {
		start = q - 1
	}

	return Card{
		Start:       start,
		Question:    q,
		AnswerStart: findAnswerStart(lines, q),
		End:         findEnd(lines, q),
	}, nil
}

// findQuestionAbove scans upward from idx for a numbered question,
// giving up when a section delimiter is crossed. Returns -1 if none.
func findQuestionAbove(lines []string, idx int) int {
	for i := idx; i >= 0; i-- {
		if IsDelimiter(lines[i]) {
			return -1
		}
		if IsQuestion(lines[i]) {
			return i
		}
	}
	return -1
}

// findAnswerStart scans downward from the question for the first answer
// line, stopping empty-handed if another question or a delimiter shows
// up first. Returns -1 when the card has no answer block.
func findAnswerStart(lines []string, q int) int {
	for i := q + 1; i < len(lines); i++ {
		switch {
		case IsAnswer(lines[i]):
			return i
		case IsQuestion(lines[i]) || IsDelimiter(lines[i]):
			return -1
		}
	}
	return -1
}

// findEnd scans downward from the question applying the ordered stop
// rules: a following question, ID comment, or delimiter ends the card
// on the previous line; a blank line ends it only once an answer has
// been seen and no answer follows within endLookahead lines. Otherwise
// the card runs to the end of the document. The result never precedes
// the question line.
func findEnd(lines []string, q int) int {
	end := len(lines) - 1
	seenAnswer := false

scan:
	for i := q + 1; i < len(lines); i++ {
		line := lines[i]
		switch {
		case IsQuestion(line) || IsIDComment(line) || IsDelimiter(line):
			end = i - 1
			break scan
		case IsBlank(line) && seenAnswer && !answerWithin(lines, i+1, endLookahead):
			end = i - 1
			break scan
		case IsAnswer(line):
			seenAnswer = true
		}
	}

	if end < q {
		end = q
	}
	return end
}

// answerWithin reports whether any of lines[from:from+n] is an answer line.
func answerWithin(lines []string, from, n int) bool {
	for i := from; i < from+n && i < len(lines); i++ {
		if IsAnswer(lines[i]) {
			return true
		}
	}
	return false
}

// AnswerLines returns the indices of every answer line within the
// card's answer block, or nil when the card has none.
func AnswerLines(lines []string, c Card) []int {
	if !c.HasAnswer() {
		return nil
	}
	var out []int
	for i := c.AnswerStart; i <= c.End && i < len(lines); i++ {
		if IsAnswer(lines[i]) {
			out = append(out, i)
		}
	}
	return out
}

// All returns every card in the document in order. Each in-section
// question line anchors exactly one card, so the results never overlap.
func All(lines []string) []Card {
	var cards []Card
	for i, line := range lines {
		if !IsQuestion(line) || !InsideSection(lines, i) {
			continue
		}
		c, err := Find(lines, i)
		if err != nil {
			continue
		}
		cards = append(cards, c)
	}
	return cards
}
