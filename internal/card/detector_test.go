package card

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsideSection(t *testing.T) {
	doc := []string{
		"preamble",  // 0
		"---",       // 1
		"1. Q?",     // 2
		"> A",       // 3
		"---",       // 4
		"postamble", // 5
		"---",       // 6
		"2. Q2?",    // 7
	}

	tests := []struct {
		name string
		idx  int
		want bool
	}{
		{"before first delimiter", 0, false},
		{"opening delimiter itself", 1, false},
		{"question inside", 2, true},
		{"answer inside", 3, true},
		{"closing delimiter itself", 4, false},
		{"between sections", 5, false},
		{"inside second section", 7, true},
		{"negative index", -1, false},
		{"past end", 99, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsideSection(doc, tt.idx))
		})
	}
}

func TestFind_BoundaryContainment(t *testing.T) {
	doc := []string{"---", "1. Q?", "", "> A", "---"}

	want := Card{Start: 1, Question: 1, AnswerStart: 3, End: 3}
	for _, idx := range []int{1, 3} {
		c, err := Find(doc, idx)
		require.NoError(t, err, "idx %d", idx)
		assert.Equal(t, want, c, "idx %d", idx)
	}

	_, err := Find(doc, 0)
	assert.ErrorIs(t, err, ErrNotInSection)
}

func TestFind_IDCommentAttachment(t *testing.T) {
	doc := []string{"---", "<!--ID:42-->", "1. Q?", "> A", "---"}

	c, err := Find(doc, 2)
	require.NoError(t, err)
	assert.Equal(t, Card{Start: 1, Question: 2, AnswerStart: 3, End: 3}, c)
}

func TestFind_MultiCardSeparation(t *testing.T) {
	doc := []string{
		"---",        // 0
		"1. First?",  // 1
		"> a1",       // 2
		"2. Second?", // 3
		"> b1",       // 4
		"> b2",       // 5
		"---",        // 6
	}

	first, err := Find(doc, 2)
	require.NoError(t, err)
	assert.Equal(t, Card{Start: 1, Question: 1, AnswerStart: 2, End: 2}, first)

	second, err := Find(doc, 5)
	require.NoError(t, err)
	assert.Equal(t, Card{Start: 3, Question: 3, AnswerStart: 4, End: 5}, second)

	// The second card's bounds never reach into the first card.
	assert.Greater(t, second.Start, first.End)
}

func TestFind_NoQuestion(t *testing.T) {
	doc := []string{"---", "just some prose", "---"}
	_, err := Find(doc, 1)
	assert.ErrorIs(t, err, ErrNoQuestion)
}

func TestFind_UpwardScanStopsAtDelimiter(t *testing.T) {
	// The question in the first section must not be picked up for a
	// line in the second one.
	doc := []string{"---", "1. Q?", "---", "---", "prose", "---"}
	_, err := Find(doc, 4)
	assert.ErrorIs(t, err, ErrNoQuestion)
}

func TestFind_AtIDCommentLine(t *testing.T) {
	// The upward scan starts at the queried line itself, so the ID
	// comment belonging to the card below is not a valid query point
	// even though Find from the question includes it in the range.
	doc := []string{"---", "<!--ID:42-->", "1. Q?", "> A", "---"}

	_, err := Find(doc, 1)
	assert.ErrorIs(t, err, ErrNoQuestion)

	c, err := Find(doc, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Start)
}

func TestFind_MultiLineQuestion(t *testing.T) {
	doc := []string{
		"---",                  // 0
		"1. What is the rule",  // 1
		"   for multi-line?",   // 2
		"> It keeps scanning.", // 3
		"---",                  // 4
	}

	c, err := Find(doc, 2)
	require.NoError(t, err)
	assert.Equal(t, Card{Start: 1, Question: 1, AnswerStart: 3, End: 3}, c)
}

func TestFind_AnswerlessCard(t *testing.T) {
	doc := []string{"---", "1. Unanswered?", "---"}

	c, err := Find(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, Card{Start: 1, Question: 1, AnswerStart: -1, End: 1}, c)
	assert.False(t, c.HasAnswer())
	assert.Nil(t, AnswerLines(doc, c))
}

func TestFind_BlankGapWithinLookahead(t *testing.T) {
	doc := []string{
		"---",   // 0
		"1. Q?", // 1
		"> a",   // 2
		"",      // 3
		"> b",   // 4
		"---",   // 5
	}

	c, err := Find(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, Card{Start: 1, Question: 1, AnswerStart: 2, End: 4}, c)
	assert.Equal(t, []int{2, 4}, AnswerLines(doc, c))
}

func TestFind_BlankGapBeyondLookahead(t *testing.T) {
	doc := []string{
		"---",    // 0
		"1. Q?",  // 1
		"> a",    // 2
		"",       // 3
		"prose",  // 4
		"prose",  // 5
		"prose",  // 6
		"> late", // 7
		"---",    // 8
	}

	c, err := Find(doc, 1)
	require.NoError(t, err)
	// No answer within 3 lines of the blank, so the card ends before it.
	assert.Equal(t, 2, c.End)
}

func TestFind_BlankBeforeAnyAnswerDoesNotEnd(t *testing.T) {
	doc := []string{
		"---",      // 0
		"1. Q?",    // 1
		"",         // 2
		"",         // 3
		"",         // 4
		"",         // 5
		"> answer", // 6
		"---",      // 7
	}

	c, err := Find(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, c.End)
	assert.Equal(t, 6, c.AnswerStart)
}

func TestFind_EndStopsBeforeIDComment(t *testing.T) {
	doc := []string{
		"---",         // 0
		"1. Q?",       // 1
		"> a",         // 2
		"<!--ID:9-->", // 3
		"2. Next?",    // 4
		"---",         // 5
	}

	c, err := Find(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, c.End)
}

func TestFind_EndDefaultsToDocumentEnd(t *testing.T) {
	doc := []string{"---", "1. Q?", "> a", "> b"}

	c, err := Find(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, c.End)
}

func TestFind_Idempotent(t *testing.T) {
	doc := []string{"---", "1. Q?", "> a", "---"}
	first, err := Find(doc, 2)
	require.NoError(t, err)
	second, err := Find(doc, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnswerLines_SkipsInterleavedProse(t *testing.T) {
	doc := []string{
		"---",   // 0
		"1. Q?", // 1
		"> a",   // 2
		"",      // 3
		"> b",   // 4
		"---",   // 5
	}
	c, err := Find(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, AnswerLines(doc, c))
}

func TestAll(t *testing.T) {
	doc := []string{
		"# notes",       // 0
		"---",           // 1
		"<!--ID:1-->",   // 2
		"1. First?",     // 3
		"> a",           // 4
		"2. Second?",    // 5
		"---",           // 6
		"5. Not a card", // 7 outside any section
		"---",           // 8
		"3. Third?",     // 9
		"> c",           // 10
		"---",           // 11
	}

	cards := All(doc)
	require.Len(t, cards, 3)
	assert.Equal(t, Card{Start: 2, Question: 3, AnswerStart: 4, End: 4}, cards[0])
	assert.Equal(t, Card{Start: 5, Question: 5, AnswerStart: -1, End: 5}, cards[1])
	assert.Equal(t, Card{Start: 9, Question: 9, AnswerStart: 10, End: 10}, cards[2])
}

func TestPatterns(t *testing.T) {
	assert.True(t, IsQuestion("12. text"))
	assert.True(t, IsQuestion("  3. indented"))
	assert.False(t, IsQuestion("3.no space after dot"))
	assert.False(t, IsQuestion("no number"))

	assert.True(t, IsAnswer("> text"))
	assert.True(t, IsAnswer(">"))
	assert.True(t, IsAnswer("  >  padded"))
	assert.False(t, IsAnswer("text > later"))

	assert.True(t, IsIDComment("<!--ID:123-->"))
	assert.True(t, IsIDComment("  <!--ID:1-->  "))
	assert.False(t, IsIDComment("<!--ID:-->"))
	assert.False(t, IsIDComment("<!--ID:12--> trailing"))

	assert.True(t, IsDelimiter("---"))
	assert.False(t, IsDelimiter("--- "))
	assert.False(t, IsDelimiter("----"))

	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t"))
	assert.False(t, IsBlank(" x"))
}

func TestFind_ErrorsWrapSentinels(t *testing.T) {
	doc := []string{"no sections here"}
	_, err := Find(doc, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInSection))
}
