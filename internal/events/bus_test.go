package events

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/smazurov/torchnode/internal/api/models"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan TorchStateChangedEvent, 1)

	unsub := bus.Subscribe(func(e TorchStateChangedEvent) {
		received <- e
	})
	defer unsub()

	bus.Publish(TorchStateChangedEvent{Device: "white:flash", On: true, Timestamp: "2025-01-27T10:30:00Z"})

	select {
	case got := <-received:
		if got.Device != "white:flash" || !got.On {
			t.Errorf("unexpected event: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan StrobeStateChangedEvent, 1)

	unsub := bus.Subscribe(func(e StrobeStateChangedEvent) {
		received <- e
	})
	unsub()

	bus.Publish(StrobeStateChangedEvent{Running: true})

	select {
	case e := <-received:
		t.Errorf("received event after unsubscribe: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_TypeSafety(t *testing.T) {
	bus := New()
	torch := make(chan TorchStateChangedEvent, 1)
	strobe := make(chan StrobeStateChangedEvent, 1)

	defer bus.Subscribe(func(e TorchStateChangedEvent) { torch <- e })()
	defer bus.Subscribe(func(e StrobeStateChangedEvent) { strobe <- e })()

	bus.Publish(StrobeStateChangedEvent{Running: true, IntervalMs: 120})

	select {
	case e := <-strobe:
		if e.IntervalMs != 120 {
			t.Errorf("IntervalMs = %d, want 120", e.IntervalMs)
		}
	case <-time.After(time.Second):
		t.Fatal("strobe event not delivered")
	}

	select {
	case e := <-torch:
		t.Errorf("torch subscriber received foreign event: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_UnknownHandler(t *testing.T) {
	bus := New()
	unsub := bus.Subscribe(func(string) {})
	if unsub == nil {
		t.Fatal("Subscribe returned nil for unknown handler type")
	}
	unsub()
}

func TestBus_ThreadSafety(t *testing.T) {
	bus := New()
	var mu sync.Mutex
	count := 0
	done := make(chan struct{})

	defer bus.Subscribe(func(NotificationEvent) {
		mu.Lock()
		count++
		if count == 100 {
			close(done)
		}
		mu.Unlock()
	})()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				bus.Publish(NotificationEvent{Message: "x"})
			}
		}()
	}
	wg.Wait()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		mu.Lock()
		defer mu.Unlock()
		t.Fatalf("received %d events, want 100", count)
	}
}

func TestNotifier(t *testing.T) {
	bus := New()
	received := make(chan NotificationEvent, 2)
	defer bus.Subscribe(func(e NotificationEvent) { received <- e })()

	n := NewNotifier(bus)
	n.Notify("torch busy")
	n.Info("strobe started")

	first := <-received
	second := <-received
	if first.Level != "error" || first.Message != "torch busy" {
		t.Errorf("first = %+v", first)
	}
	if second.Level != "info" {
		t.Errorf("second level = %q, want info", second.Level)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Errorf("notification IDs must be unique and non-empty: %q %q", first.ID, second.ID)
	}
}

func TestEventJSONSerialization(t *testing.T) {
	ev := PanelStateChangedEvent{
		Panel: models.PanelData{
			Title:      "Flashlight",
			SliderMax:  9,
			TorchOn:    true,
			ButtonTint: "green",
		},
		Action:    "press",
		Timestamp: "2025-01-27T10:30:00Z",
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	panel, ok := decoded["panel"].(map[string]any)
	if !ok {
		t.Fatalf("panel field missing: %s", data)
	}
	if panel["torch_on"] != true || panel["button_tint"] != "green" {
		t.Errorf("unexpected panel JSON: %s", data)
	}
}

func TestSubscribeToChannel(t *testing.T) {
	bus := New()
	ch := make(chan any, 1)

	unsub := SubscribeToChannel[TorchStateChangedEvent](bus, ch)
	defer unsub()

	bus.Publish(TorchStateChangedEvent{On: true})

	select {
	case e := <-ch:
		if ev, ok := e.(TorchStateChangedEvent); !ok || !ev.On {
			t.Errorf("unexpected event: %#v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("event not forwarded to channel")
	}
}

func TestSubscribeToChannel_NonBlocking(_ *testing.T) {
	bus := New()
	ch := make(chan any)

	unsub := SubscribeToChannel[TorchStateChangedEvent](bus, ch)
	defer unsub()

	// Nobody reads ch; publishing must not block.
	for i := 0; i < 10; i++ {
		bus.Publish(TorchStateChangedEvent{On: i%2 == 0})
	}
}
