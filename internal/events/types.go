package events

import "github.com/smazurov/torchnode/internal/api/models"

// Event type constants for kelindar/event.
const (
	TypeTorchStateChanged uint32 = iota + 1
	TypeStrobeStateChanged
	TypePanelStateChanged
	TypeNotification
	TypeLogEntry
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// TorchStateChangedEvent is published after every successful write to the torch.
type TorchStateChangedEvent struct {
	Device    string `json:"device" example:"white:flash" doc:"LED class device name"`
	On        bool   `json:"on" example:"true" doc:"Whether the torch is lit"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for TorchStateChangedEvent.
func (e TorchStateChangedEvent) Type() uint32 { return TypeTorchStateChanged }

// StrobeStateChangedEvent is published when the strobe loop starts, is
// rescheduled with a new interval, or stops.
type StrobeStateChangedEvent struct {
	Running    bool   `json:"running" example:"true" doc:"Whether the strobe loop is active"`
	IntervalMs int64  `json:"interval_ms" example:"240" doc:"Interval between toggles"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for StrobeStateChangedEvent.
func (e StrobeStateChangedEvent) Type() uint32 { return TypeStrobeStateChanged }

// PanelStateChangedEvent carries the full screen state after a user action.
type PanelStateChangedEvent struct {
	Panel     models.PanelData `json:"panel" doc:"Current panel state"`
	Action    string           `json:"action" example:"press" doc:"Action that changed the panel"`
	Timestamp string           `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for PanelStateChangedEvent.
func (e PanelStateChangedEvent) Type() uint32 { return TypePanelStateChanged }

// NotificationEvent is a short user-facing message, shown as a toast.
type NotificationEvent struct {
	ID        string `json:"id" example:"1b4e28ba-2fa1-11d2-883f-0016d3cca427" doc:"Notification identifier"`
	Level     string `json:"level" example:"error" doc:"Severity: info or error"`
	Message   string `json:"message" example:"write /sys/class/leds/white:flash/brightness: permission denied" doc:"Message text"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for NotificationEvent.
func (e NotificationEvent) Type() uint32 { return TypeNotification }

// LogEntryEvent represents a log entry for SSE streaming.
type LogEntryEvent struct {
	Seq        uint64         `json:"seq" example:"42" doc:"Monotonic sequence number for deduplication"`
	Timestamp  string         `json:"timestamp" example:"2025-01-09T10:30:00.123Z" doc:"Log timestamp"`
	Level      string         `json:"level" example:"info" doc:"Log level"`
	Module     string         `json:"module" example:"torch" doc:"Source module"`
	Message    string         `json:"message" doc:"Log message"`
	Attributes map[string]any `json:"attributes,omitempty" doc:"Structured log attributes"`
}

// Type returns the event type identifier for LogEntryEvent.
func (e LogEntryEvent) Type() uint32 { return TypeLogEntry }
