package buffer

// Buffer is a line-granular text buffer. The detection and toggling
// engines work on plain line slices; Buffer owns the file I/O and the
// modified flag around them.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Lines() []string
	SetLines(lines []string)
	Line(index int) (string, error)
	SetLine(index int, line string) error
	InsertLine(index int, line string) error
	RemoveLine(index int) error
	LineCount() int
	Bytes() []byte
	FilePath() string
	IsModified() bool
}
