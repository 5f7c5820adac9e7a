// Package clipboard copies card text to an internal register and,
// when enabled, the system clipboard.
package clipboard

import (
	"fmt"
	"strings"

	systemclipboard "github.com/atotto/clipboard"

	"github.com/okvist/deckle/internal/card"
	"github.com/okvist/deckle/internal/logger"
)

// Manager holds the yank register. The internal register always works;
// the system clipboard is best effort on headless machines.
type Manager struct {
	register  string
	useSystem bool
}

// NewManager creates a clipboard manager. useSystem mirrors the
// `system_clipboard` editor setting.
func NewManager(useSystem bool) *Manager {
	return &Manager{useSystem: useSystem}
}

// YankCard copies the card's full line range out of the document.
// Returns the number of lines copied.
func (m *Manager) YankCard(lines []string, c card.Card) (int, error) {
	if c.Start < 0 || c.End >= len(lines) || c.Start > c.End {
		return 0, fmt.Errorf("card range %d-%d out of bounds for %d lines", c.Start, c.End, len(lines))
	}

	text := strings.Join(lines[c.Start:c.End+1], "\n")
	if err := m.Write(text); err != nil {
		return 0, err
	}
	return c.End - c.Start + 1, nil
}

// Write stores text in the register and mirrors it to the system
// clipboard when enabled.
func (m *Manager) Write(text string) error {
	m.register = text
	logger.Debugf("Clipboard: stored %d bytes in register", len(text))

	if m.useSystem {
		if err := systemclipboard.WriteAll(text); err != nil {
			// Keep the register write; the caller decides how loudly to
			// report the missing system clipboard.
			return fmt.Errorf("system clipboard write failed: %w", err)
		}
	}
	return nil
}

// Read returns the register content, preferring the system clipboard
// when enabled.
func (m *Manager) Read() (string, error) {
	if m.useSystem {
		text, err := systemclipboard.ReadAll()
		if err == nil {
			return text, nil
		}
		logger.Debugf("Clipboard: system read failed, falling back to register: %v", err)
	}
	return m.register, nil
}
