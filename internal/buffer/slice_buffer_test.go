package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSave_RoundTripWithFinalNewline(t *testing.T) {
	content := "---\n1. Q?\n> A\n---\n"
	path := writeTemp(t, content)

	sb := NewSliceBuffer()
	require.NoError(t, sb.Load(path))
	assert.Equal(t, []string{"---", "1. Q?", "> A", "---"}, sb.Lines())
	assert.False(t, sb.IsModified())
	assert.Equal(t, content, string(sb.Bytes()))

	require.NoError(t, sb.Save(""))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLoadSave_RoundTripWithoutFinalNewline(t *testing.T) {
	content := "alpha\nbeta"
	path := writeTemp(t, content)

	sb := NewSliceBuffer()
	require.NoError(t, sb.Load(path))
	assert.Equal(t, []string{"alpha", "beta"}, sb.Lines())
	assert.Equal(t, content, string(sb.Bytes()))
}

func TestLoad_MissingFile(t *testing.T) {
	sb := NewSliceBuffer()
	path := filepath.Join(t.TempDir(), "new.md")
	require.NoError(t, sb.Load(path))
	assert.Equal(t, []string{""}, sb.Lines())
	assert.Equal(t, path, sb.FilePath())
	assert.False(t, sb.IsModified())
}

func TestLinesReturnsCopy(t *testing.T) {
	sb := NewSliceBuffer()
	sb.SetLines([]string{"a", "b"})

	lines := sb.Lines()
	lines[0] = "mutated"

	got, err := sb.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}

func TestInsertRemoveSetLine(t *testing.T) {
	sb := NewSliceBuffer()
	sb.SetLines([]string{"one", "three"})

	require.NoError(t, sb.InsertLine(1, "two"))
	assert.Equal(t, []string{"one", "two", "three"}, sb.Lines())

	require.NoError(t, sb.InsertLine(3, "four"))
	assert.Equal(t, 4, sb.LineCount())

	require.NoError(t, sb.SetLine(0, "ONE"))
	got, err := sb.Line(0)
	require.NoError(t, err)
	assert.Equal(t, "ONE", got)

	require.NoError(t, sb.RemoveLine(3))
	assert.Equal(t, []string{"ONE", "two", "three"}, sb.Lines())

	assert.Error(t, sb.InsertLine(99, "x"))
	assert.Error(t, sb.RemoveLine(-1))
	assert.Error(t, sb.SetLine(17, "x"))
	_, err = sb.Line(17)
	assert.Error(t, err)
}

func TestRemoveLastLineKeepsOneEmpty(t *testing.T) {
	sb := NewSliceBuffer()
	require.NoError(t, sb.RemoveLine(0))
	assert.Equal(t, []string{""}, sb.Lines())
}

func TestSetLinesEmptyKeepsOneLine(t *testing.T) {
	sb := NewSliceBuffer()
	sb.SetLines(nil)
	assert.Equal(t, []string{""}, sb.Lines())
}

func TestModifiedFlag(t *testing.T) {
	path := writeTemp(t, "x\n")
	sb := NewSliceBuffer()
	require.NoError(t, sb.Load(path))
	assert.False(t, sb.IsModified())

	sb.SetLines([]string{"y"})
	assert.True(t, sb.IsModified())

	require.NoError(t, sb.Save(""))
	assert.False(t, sb.IsModified())
}

func TestSave_NoPath(t *testing.T) {
	sb := NewSliceBuffer()
	assert.Error(t, sb.Save(""))
}

func TestSave_OverridePathRebinds(t *testing.T) {
	sb := NewSliceBuffer()
	sb.SetLines([]string{"content"})

	path := filepath.Join(t.TempDir(), "other.md")
	require.NoError(t, sb.Save(path))
	assert.Equal(t, path, sb.FilePath())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(data))
}
