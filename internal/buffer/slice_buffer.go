package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// SliceBuffer keeps the document as a slice of lines. Good enough for
// note files; anything chasing huge documents wants a rope instead.
type SliceBuffer struct {
	lines    []string
	filePath string
	modified bool
	// finalNewline remembers whether the file on disk ended with a
	// newline, so a load/save cycle is byte-identical.
	finalNewline bool
}

// NewSliceBuffer returns an empty buffer holding one empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		lines:        []string{""},
		finalNewline: true,
	}
}

// Load replaces the buffer content with the file at filePath. A missing
// file yields an empty buffer bound to that path, not an error.
func (sb *SliceBuffer) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = []string{""}
			sb.filePath = filePath
			sb.modified = false
			sb.finalNewline = true
			return nil
		}
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}

	content := string(data)
	sb.finalNewline = strings.HasSuffix(content, "\n")
	if sb.finalNewline {
		content = strings.TrimSuffix(content, "\n")
	}

	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	sb.lines = lines
	sb.filePath = filePath
	sb.modified = false
	return nil
}

// Save writes the buffer to filePath, or to the loaded path when
// filePath is empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

// Lines returns a copy of the buffer's lines. Callers own the result;
// the engines never see the backing slice.
func (sb *SliceBuffer) Lines() []string {
	out := make([]string, len(sb.lines))
	copy(out, sb.lines)
	return out
}

// SetLines replaces the whole document, keeping the one-line minimum.
func (sb *SliceBuffer) SetLines(lines []string) {
	if len(lines) == 0 {
		lines = []string{""}
	}
	sb.lines = make([]string, len(lines))
	copy(sb.lines, lines)
	sb.modified = true
}

// Line returns the line at index.
func (sb *SliceBuffer) Line(index int) (string, error) {
	if index < 0 || index >= len(sb.lines) {
		return "", fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// SetLine replaces the line at index.
func (sb *SliceBuffer) SetLine(index int, line string) error {
	if index < 0 || index >= len(sb.lines) {
		return fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	sb.lines[index] = line
	sb.modified = true
	return nil
}

// InsertLine places line at index, shifting the rest down. Index may
// equal LineCount to append.
func (sb *SliceBuffer) InsertLine(index int, line string) error {
	if index < 0 || index > len(sb.lines) {
		return fmt.Errorf("insert index %d out of bounds (0-%d)", index, len(sb.lines))
	}
	sb.lines = append(sb.lines, "")
	copy(sb.lines[index+1:], sb.lines[index:])
	sb.lines[index] = line
	sb.modified = true
	return nil
}

// RemoveLine deletes the line at index. Removing the last remaining
// line leaves one empty line, matching the buffer convention.
func (sb *SliceBuffer) RemoveLine(index int) error {
	if index < 0 || index >= len(sb.lines) {
		return fmt.Errorf("remove index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	sb.lines = append(sb.lines[:index], sb.lines[index+1:]...)
	if len(sb.lines) == 0 {
		sb.lines = []string{""}
	}
	sb.modified = true
	return nil
}

// LineCount returns the number of lines in the buffer.
func (sb *SliceBuffer) LineCount() int { return len(sb.lines) }

// Bytes renders the document as written to disk.
func (sb *SliceBuffer) Bytes() []byte {
	var buf bytes.Buffer
	for i, line := range sb.lines {
		buf.WriteString(line)
		if i < len(sb.lines)-1 {
			buf.WriteByte('\n')
		}
	}
	if sb.finalNewline {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// FilePath returns the path the buffer is bound to.
func (sb *SliceBuffer) FilePath() string { return sb.filePath }

// IsModified reports whether the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool { return sb.modified }

var _ Buffer = (*SliceBuffer)(nil)
