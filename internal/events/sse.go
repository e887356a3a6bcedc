package events

import "github.com/kelindar/event"

// SubscribeToChannel forwards events of type T into ch. SSE handlers select
// on the channel; a full channel drops the event instead of stalling the
// dispatcher.
func SubscribeToChannel[T Event](bus *Bus, ch chan<- any) func() {
	return event.Subscribe(bus.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
