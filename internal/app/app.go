// Package app wires the buffer, detector, toggler, clipboard, and TUI
// into the interactive viewer.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/okvist/deckle/internal/buffer"
	"github.com/okvist/deckle/internal/card"
	"github.com/okvist/deckle/internal/clipboard"
	"github.com/okvist/deckle/internal/config"
	"github.com/okvist/deckle/internal/event"
	"github.com/okvist/deckle/internal/logger"
	"github.com/okvist/deckle/internal/region"
	"github.com/okvist/deckle/internal/statusbar"
	"github.com/okvist/deckle/internal/tui"
)

// App encapsulates the components and main loop of the viewer.
type App struct {
	tuiManager   *tui.TUI
	buf          buffer.Buffer
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	toggler      *region.Toggler
	clip         *clipboard.Manager
	cfg          *config.Config

	quit          chan struct{}
	redrawRequest chan struct{}

	// Viewer state. The cursor column is a rune index.
	cursorLine int
	cursorCol  int
	viewTop    int

	forceQuitPending bool
}

// NewApp creates and initializes an application instance bound to filePath.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	buf := buffer.NewSliceBuffer()
	if err := buf.Load(filePath); err != nil {
		tuiManager.Close()
		return nil, err
	}

	a := &App{
		tuiManager:    tuiManager,
		buf:           buf,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		eventManager:  event.NewManager(),
		toggler:       region.NewToggler(cfg.Markers.Markers()),
		clip:          clipboard.NewManager(cfg.Editor.SystemClipboard),
		cfg:           cfg,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	a.subscribeStatusHandlers()
	a.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{
		FilePath:  filePath,
		LineCount: buf.LineCount(),
	})

	// A document saved mid-edit resumes in editing mode.
	a.statusBar.SetEditing(a.toggler.IsEditing(buf.Lines()))

	return a, nil
}

// Run starts the event and drawing loops, returning when the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.eventLoop()

	a.statusBar.SetTemporaryMessage("deckle - e toggle edit | E edit externally | y yank | s save | q quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.buf.IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop handles TUI events, delegating keys to handleKey.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.handleKey(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// requestRedraw schedules a redraw without blocking; a pending request
// already covers this one.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// draw renders one frame.
func (a *App) draw() {
	lines := a.buf.Lines()
	a.clampView(lines)

	width, height := a.tuiManager.Size()
	tui.DrawView(a.tuiManager, tui.View{
		Lines:      lines,
		Classify:   a.classifier(lines),
		ViewTop:    a.viewTop,
		CursorLine: a.cursorLine,
		CursorCol:  a.cursorCol,
	})
	a.statusBar.SetFileInfo(a.buf.FilePath(), a.buf.IsModified())
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height)
	a.tuiManager.Show()
}

// classifier styles lines by what the detector and toggler see in them.
func (a *App) classifier(lines []string) func(int) tui.LineClass {
	return func(i int) tui.LineClass {
		line := lines[i]
		switch {
		case a.toggler.IsMarkerLine(line):
			return tui.ClassMarker
		case card.IsDelimiter(line):
			return tui.ClassDelimiter
		case card.IsIDComment(line):
			return tui.ClassIDComment
		case card.IsQuestion(line) && card.InsideSection(lines, i):
			return tui.ClassQuestion
		case card.IsAnswer(line):
			return tui.ClassAnswer
		default:
			return tui.ClassText
		}
	}
}
