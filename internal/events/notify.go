package events

import (
	"time"

	"github.com/google/uuid"
)

// Notifier turns torch failures into NotificationEvents. It satisfies
// torch.Notifier.
type Notifier struct {
	bus *Bus
}

// NewNotifier creates a notifier publishing on bus.
func NewNotifier(bus *Bus) *Notifier {
	return &Notifier{bus: bus}
}

// Notify publishes an error-level notification.
func (n *Notifier) Notify(message string) {
	n.publish("error", message)
}

// Info publishes an informational notification.
func (n *Notifier) Info(message string) {
	n.publish("info", message)
}

func (n *Notifier) publish(level, message string) {
	n.bus.Publish(NotificationEvent{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
