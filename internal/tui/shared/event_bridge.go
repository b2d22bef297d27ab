package shared

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/organize-files/internal/organizer"
)

// EventBufferSize is how many messages the bridge holds before a sender waits.
const EventBufferSize = 100

// OrganizerEventMsg wraps an organizer.Event for use as a tea.Msg.
type OrganizerEventMsg struct {
	Event organizer.Event
}

// EventBridge carries messages from a run goroutine to the bubble tea loop.
// It implements organizer.EventEmitter. Sends wait for buffer space so no
// progress line is lost; they give up once the bridge is closed.
type EventBridge struct {
	eventChan chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, EventBufferSize),
		done:      make(chan struct{}),
	}
}

// Emit implements organizer.EventEmitter.
func (b *EventBridge) Emit(event organizer.Event) {
	_ = b.Send(context.Background(), OrganizerEventMsg{Event: event})
}

// Send delivers an arbitrary message to the TUI. It returns an error if ctx
// ends or the bridge is closed before the message is queued.
func (b *EventBridge) Send(ctx context.Context, msg tea.Msg) error {
	select {
	case <-b.done:
		return ErrBridgeClosed
	default:
	}

	select {
	case b.eventChan <- msg:
		return nil
	case <-b.done:
		return ErrBridgeClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListenCmd returns a tea.Cmd that blocks until a message is received.
// Use this after processing each message to keep listening.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.eventChan:
			return msg
		case <-b.done:
			return nil
		}
	}
}

// Close stops the bridge. Pending and future sends are abandoned.
func (b *EventBridge) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}
