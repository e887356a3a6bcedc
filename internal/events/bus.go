package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher. Events are delivered
// asynchronously; per subscriber they arrive in publish order.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers of its concrete type.
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case TorchStateChangedEvent:
		event.Publish(b.dispatcher, e)
	case StrobeStateChangedEvent:
		event.Publish(b.dispatcher, e)
	case PanelStateChangedEvent:
		event.Publish(b.dispatcher, e)
	case NotificationEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler for the event type named by its parameter
// and returns the unsubscribe function. Unknown handler types get a no-op.
//
//	unsub := bus.Subscribe(func(e TorchStateChangedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(TorchStateChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(StrobeStateChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PanelStateChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(NotificationEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEntryEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
