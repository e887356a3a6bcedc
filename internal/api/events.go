package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/torchnode/internal/events"
)

// registerSSERoutes registers the flashlight event stream.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time panel, torch and strobe state plus user notifications. The current panel state is sent on connect",
		Tags:        []string{"events"},
		Security:    withAuth(),
		Errors:      []int{401},
	}, map[string]any{
		"panel-state-changed":  events.PanelStateChangedEvent{},
		"torch-state-changed":  events.TorchStateChangedEvent{},
		"strobe-state-changed": events.StrobeStateChangedEvent{},
		"notification":         events.NotificationEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 32)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.PanelStateChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.TorchStateChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.StrobeStateChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.NotificationEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// A new client renders the screen from the first message
		if err := send.Data(events.PanelStateChangedEvent{
			Panel:     s.panel.View(),
			Action:    "connected",
			Timestamp: time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
