// Package events provides the change-notification channel for record
// operations.
//
// The notifier is an explicit handle created at startup and passed to the
// service, not ambient global state. Emit is synchronous: handlers run in
// registration order on the caller's goroutine, and a panicking handler is
// recovered and logged so it can never abort the operation that emitted.
package events

import (
	"log/slog"
	"sync"
	"time"

	"github.com/govault/govault/internal/record"
)

// Event names emitted by the record service.
const (
	RecordAdded   = "recordAdded"
	RecordUpdated = "recordUpdated"
	RecordDeleted = "recordDeleted"
)

// ChangeEvent is the payload delivered to subscribers.
type ChangeEvent struct {
	// Op is the event name (RecordAdded, RecordUpdated, RecordDeleted).
	Op string `json:"op"`

	// OpToken correlates this event with the log lines and journal row of
	// the operation that produced it.
	OpToken string `json:"op_token"`

	// Record is the record after the change (for deletes, its pre-deletion
	// value).
	Record record.Record `json:"record"`

	// At is when the operation completed.
	At time.Time `json:"at"`
}

// Handler receives change events.
type Handler func(ChangeEvent)

// Notifier dispatches change events to subscribers.
type Notifier struct {
	logger *slog.Logger

	mu       sync.Mutex
	handlers map[string][]Handler
}

// New creates an empty notifier.
func New(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for an event name.
// Handlers for the same name run in registration order.
func (n *Notifier) Subscribe(event string, h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[event] = append(n.handlers[event], h)
}

// Emit synchronously invokes all handlers registered for ev.Op.
// Handler panics are recovered and logged, never propagated.
func (n *Notifier) Emit(ev ChangeEvent) {
	n.mu.Lock()
	handlers := make([]Handler, len(n.handlers[ev.Op]))
	copy(handlers, n.handlers[ev.Op])
	n.mu.Unlock()

	for _, h := range handlers {
		n.invoke(h, ev)
	}
}

// invoke runs one handler with panic isolation.
func (n *Notifier) invoke(h Handler, ev ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("event handler panicked", "event", ev.Op, "panic", r)
		}
	}()
	h(ev)
}

// LogObserver returns a handler that logs every change event.
// Subscribed to all three event names at startup.
func LogObserver(logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ev ChangeEvent) {
		logger.Info("record changed",
			"event", ev.Op,
			"op_token", ev.OpToken,
			"id", ev.Record.ID,
			"name", ev.Record.Name,
		)
	}
}
