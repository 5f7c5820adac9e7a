package event

import (
	"sync"

	"github.com/okvist/deckle/internal/logger"
)

// Handler is the subscriber signature. Returning true marks the event
// consumed and stops further handlers.
type Handler func(e Event) bool

// Manager handles event subscriptions and synchronous dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{handlers: make(map[Type][]Handler)}
}

// Subscribe adds a handler for an event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.Debugf("Event Manager: handler subscribed to type %v", eventType)
}

// Dispatch sends an event to all handlers registered for its type,
// synchronously and in subscription order.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	e := Event{Type: eventType, Data: data}
	for _, h := range handlers {
		if h(e) {
			break
		}
	}
}
