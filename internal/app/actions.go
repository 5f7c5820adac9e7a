package app

import (
	"fmt"
	"os"
	"os/exec"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/okvist/deckle/internal/card"
	"github.com/okvist/deckle/internal/event"
	"github.com/okvist/deckle/internal/logger"
)

// handleKey maps key events to viewer actions. Returns true when the
// screen needs a redraw.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return a.actionQuit()
	case tcell.KeyCtrlS:
		return a.actionSave()
	case tcell.KeyUp:
		return a.moveCursor(-1, 0)
	case tcell.KeyDown:
		return a.moveCursor(1, 0)
	case tcell.KeyLeft:
		return a.moveCursor(0, -1)
	case tcell.KeyRight:
		return a.moveCursor(0, 1)
	case tcell.KeyPgUp:
		_, height := a.tuiManager.Size()
		return a.moveCursor(-(height - 1), 0)
	case tcell.KeyPgDn:
		_, height := a.tuiManager.Size()
		return a.moveCursor(height-1, 0)
	case tcell.KeyHome:
		a.cursorCol = 0
		return true
	case tcell.KeyEnd:
		a.cursorCol = a.lineRuneCount(a.cursorLine)
		return true
	case tcell.KeyEnter:
		return a.actionToggleEdit()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return a.actionQuit()
		case 's':
			return a.actionSave()
		case 'k':
			return a.moveCursor(-1, 0)
		case 'j':
			return a.moveCursor(1, 0)
		case 'h':
			return a.moveCursor(0, -1)
		case 'l':
			return a.moveCursor(0, 1)
		case 'g':
			a.cursorLine = 0
			return true
		case 'G':
			a.cursorLine = a.buf.LineCount() - 1
			return true
		case 'e':
			return a.actionToggleEdit()
		case 'E':
			return a.actionEditExternal()
		case 'y':
			return a.actionYankCard()
		}
	}
	return false
}

// actionQuit quits, asking once when unsaved changes exist.
func (a *App) actionQuit() bool {
	if a.buf.IsModified() && !a.forceQuitPending {
		a.forceQuitPending = true
		a.statusBar.SetTemporaryMessage("Unsaved changes! Quit again to discard them.")
		return true
	}
	close(a.quit)
	return false
}

// actionSave writes the buffer back to its file.
func (a *App) actionSave() bool {
	a.forceQuitPending = false
	if err := a.buf.Save(""); err != nil {
		a.statusBar.SetTemporaryMessage("Save failed: %v", err)
		return true
	}
	a.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: a.buf.FilePath()})
	return true
}

// actionToggleEdit opens the editing region around the cursor, or
// closes the open one. The engines return fresh slices; the buffer is
// only touched on success.
func (a *App) actionToggleEdit() bool {
	a.forceQuitPending = false
	lines := a.buf.Lines()

	if a.toggler.IsEditing(lines) {
		out, err := a.toggler.Exit(lines)
		if err != nil {
			a.statusBar.SetTemporaryMessage("%v", err)
			return true
		}
		a.buf.SetLines(out)
		a.eventManager.Dispatch(event.TypeEditExited, event.EditExitedData{})
		a.clampCursor()
		return true
	}

	c, err := card.Find(lines, a.cursorLine)
	if err != nil {
		a.statusBar.SetTemporaryMessage("%v", err)
		return true
	}
	out, err := a.toggler.Enter(lines, a.cursorLine)
	if err != nil {
		a.statusBar.SetTemporaryMessage("%v", err)
		return true
	}
	a.buf.SetLines(out)
	a.eventManager.Dispatch(event.TypeEditEntered, event.EditEnteredData{Card: c})
	a.clampCursor()
	return true
}

// actionEditExternal runs a full edit cycle through $EDITOR: open the
// region, save, hand the terminal over, and on return reload, close the
// region, and save again.
func (a *App) actionEditExternal() bool {
	a.forceQuitPending = false
	lines := a.buf.Lines()

	if a.toggler.IsEditing(lines) {
		a.statusBar.SetTemporaryMessage("Already editing; close the region first")
		return true
	}

	c, err := card.Find(lines, a.cursorLine)
	if err != nil {
		a.statusBar.SetTemporaryMessage("%v", err)
		return true
	}
	out, err := a.toggler.Enter(lines, a.cursorLine)
	if err != nil {
		a.statusBar.SetTemporaryMessage("%v", err)
		return true
	}
	a.buf.SetLines(out)
	if err := a.buf.Save(""); err != nil {
		a.statusBar.SetTemporaryMessage("Save failed: %v", err)
		return true
	}
	a.eventManager.Dispatch(event.TypeEditEntered, event.EditEnteredData{Card: c})

	if err := a.runEditor(c.Question + 2); err != nil {
		a.statusBar.SetTemporaryMessage("Editor failed: %v", err)
		return true
	}

	if err := a.buf.Load(a.buf.FilePath()); err != nil {
		a.statusBar.SetTemporaryMessage("Reload failed: %v", err)
		return true
	}
	restored, err := a.toggler.Exit(a.buf.Lines())
	if err != nil {
		// Markers removed inside the editor; nothing left to close.
		a.statusBar.SetTemporaryMessage("%v", err)
		a.eventManager.Dispatch(event.TypeEditExited, event.EditExitedData{})
		a.clampCursor()
		return true
	}
	a.buf.SetLines(restored)
	if err := a.buf.Save(""); err != nil {
		a.statusBar.SetTemporaryMessage("Save failed: %v", err)
		return true
	}
	a.eventManager.Dispatch(event.TypeEditExited, event.EditExitedData{})
	a.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: a.buf.FilePath()})
	a.clampCursor()
	return true
}

// runEditor suspends the screen and runs $EDITOR on the buffer's file,
// positioned at the given 1-based line.
func (a *App) runEditor(line int) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	if err := a.tuiManager.Suspend(); err != nil {
		return err
	}
	defer func() {
		if err := a.tuiManager.Resume(); err != nil {
			logger.Errorf("Failed to resume screen: %v", err)
		}
	}()

	cmd := exec.Command(editor, fmt.Sprintf("+%d", line), a.buf.FilePath())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// actionYankCard copies the card under the cursor.
func (a *App) actionYankCard() bool {
	lines := a.buf.Lines()
	c, err := card.Find(lines, a.cursorLine)
	if err != nil {
		a.statusBar.SetTemporaryMessage("%v", err)
		return true
	}
	n, err := a.clip.YankCard(lines, c)
	if err != nil {
		a.statusBar.SetTemporaryMessage("Yank failed: %v", err)
		return true
	}
	a.eventManager.Dispatch(event.TypeCardYanked, event.CardYankedData{Card: c, LineCount: n})
	return true
}

// moveCursor moves by whole lines and rune columns, then reports the
// new position on the bus.
func (a *App) moveCursor(deltaLine, deltaCol int) bool {
	a.cursorLine += deltaLine
	a.cursorCol += deltaCol
	a.clampCursor()
	a.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{
		Line: a.cursorLine,
		Col:  a.cursorCol,
	})
	return true
}

// clampCursor keeps the cursor within the document.
func (a *App) clampCursor() {
	if a.cursorLine < 0 {
		a.cursorLine = 0
	}
	if max := a.buf.LineCount() - 1; a.cursorLine > max {
		a.cursorLine = max
	}
	if a.cursorCol < 0 {
		a.cursorCol = 0
	}
	if max := a.lineRuneCount(a.cursorLine); a.cursorCol > max {
		a.cursorCol = max
	}
}

// lineRuneCount returns the rune length of a buffer line.
func (a *App) lineRuneCount(idx int) int {
	line, err := a.buf.Line(idx)
	if err != nil {
		return 0
	}
	return utf8.RuneCountInString(line)
}

// clampView scrolls the viewport to keep the cursor visible with the
// configured context margin.
func (a *App) clampView(lines []string) {
	_, height := a.tuiManager.Size()
	viewHeight := height - 1
	if viewHeight <= 0 {
		return
	}

	scrollOff := a.cfg.Editor.ScrollOff
	if scrollOff*2 >= viewHeight {
		scrollOff = 0
	}

	if a.cursorLine-scrollOff < a.viewTop {
		a.viewTop = a.cursorLine - scrollOff
	}
	if a.cursorLine+scrollOff >= a.viewTop+viewHeight {
		a.viewTop = a.cursorLine + scrollOff - viewHeight + 1
	}
	if a.viewTop > len(lines)-viewHeight {
		a.viewTop = len(lines) - viewHeight
	}
	if a.viewTop < 0 {
		a.viewTop = 0
	}
}
