package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// LineClass selects the style a document line is drawn with. The app
// classifies lines from the detector and toggler output; drawing stays
// ignorant of card semantics.
type LineClass int

const (
	ClassText LineClass = iota
	ClassQuestion
	ClassAnswer
	ClassDelimiter
	ClassMarker
	ClassIDComment
)

// Fixed styles for the viewer. A theme system is overkill for a
// five-class display.
var (
	StyleDefault    = tcell.StyleDefault
	styleQuestion   = tcell.StyleDefault.Bold(true)
	styleAnswer     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDelimiter  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMarker     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Italic(true)
	styleIDComment  = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleLineNumber = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func styleFor(class LineClass) tcell.Style {
	switch class {
	case ClassQuestion:
		return styleQuestion
	case ClassAnswer:
		return styleAnswer
	case ClassDelimiter:
		return styleDelimiter
	case ClassMarker:
		return styleMarker
	case ClassIDComment:
		return styleIDComment
	default:
		return StyleDefault
	}
}

// View is everything DrawView needs for one frame.
type View struct {
	Lines      []string
	Classify   func(index int) LineClass
	ViewTop    int // first visible document line
	CursorLine int
	CursorCol  int // rune index within the cursor line
}

// gutterWidth computes the line-number gutter for lineCount lines, or 0
// when the screen is too narrow to afford one.
func gutterWidth(lineCount, screenWidth int) int {
	if lineCount <= 0 {
		lineCount = 1
	}
	w := int(math.Log10(float64(lineCount))) + 2 // digits plus padding
	if w >= screenWidth {
		return 0
	}
	return w
}

// DrawView renders the visible slice of the document with a line-number
// gutter, leaving the bottom row for the status bar.
func DrawView(t *TUI, v View) {
	width, height := t.Size()
	viewHeight := height - 1
	if viewHeight <= 0 || width <= 0 {
		return
	}

	gutter := gutterWidth(len(v.Lines), width)
	maxDigits := gutter - 1

	for screenY := 0; screenY < viewHeight; screenY++ {
		lineIdx := screenY + v.ViewTop

		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, StyleDefault)
		}

		if lineIdx < 0 || lineIdx >= len(v.Lines) {
			continue
		}

		if gutter > 0 {
			numStyle := styleLineNumber
			if lineIdx == v.CursorLine {
				numStyle = numStyle.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, lineIdx+1) {
				if i < maxDigits {
					t.screen.SetContent(i, screenY, r, nil, numStyle)
				}
			}
		}

		style := StyleDefault
		if v.Classify != nil {
			style = styleFor(v.Classify(lineIdx))
		}

		gr := uniseg.NewGraphemes(v.Lines[lineIdx])
		x := gutter
		for gr.Next() {
			clusterWidth := gr.Width()
			if x+clusterWidth > width {
				break
			}
			runes := gr.Runes()
			if len(runes) > 0 {
				t.screen.SetContent(x, screenY, runes[0], runes[1:], style)
			}
			x += clusterWidth
		}
	}

	drawCursor(t, v, gutter, viewHeight, width)
}

// drawCursor places the terminal cursor at the viewer position, using
// grapheme widths so it lands on the right cell for wide characters.
func drawCursor(t *TUI, v View, gutter, viewHeight, width int) {
	screenY := v.CursorLine - v.ViewTop
	if screenY < 0 || screenY >= viewHeight {
		t.screen.HideCursor()
		return
	}

	visualCol := 0
	if v.CursorLine >= 0 && v.CursorLine < len(v.Lines) {
		visualCol = visualColumn(v.Lines[v.CursorLine], v.CursorCol)
	}
	screenX := gutter + visualCol
	if screenX >= width {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}

// visualColumn converts a rune index into a visual column.
func visualColumn(line string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	visual := 0
	runes := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if runes >= runeIndex {
			break
		}
		visual += gr.Width()
		runes += len(gr.Runes())
	}
	return visual
}
