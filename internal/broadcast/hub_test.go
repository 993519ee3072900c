package broadcast

import "testing"

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub[int]()
	a, cancelA := hub.Subscribe(1)
	b, cancelB := hub.Subscribe(1)
	defer cancelA()
	defer cancelB()

	hub.Broadcast(42)
	if got := <-a; got != 42 {
		t.Fatalf("subscriber a got %d", got)
	}
	if got := <-b; got != 42 {
		t.Fatalf("subscriber b got %d", got)
	}
}

func TestBroadcastDropsStaleValueForSlowSubscriber(t *testing.T) {
	hub := NewHub[int]()
	ch, cancel := hub.Subscribe(1)
	defer cancel()

	hub.Broadcast(1)
	hub.Broadcast(2)
	hub.Broadcast(3)

	// Only the freshest value should be waiting.
	if got := <-ch; got != 3 {
		t.Fatalf("expected latest value 3, got %d", got)
	}
	select {
	case extra := <-ch:
		t.Fatalf("unexpected queued value %d", extra)
	default:
	}
}

func TestCancelClosesChannelAndIsIdempotent(t *testing.T) {
	hub := NewHub[string]()
	ch, cancel := hub.Subscribe(1)
	if hub.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.Len())
	}

	cancel()
	cancel() // second call must be a no-op

	if hub.Len() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", hub.Len())
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}

	// Broadcasting after cancel must not panic.
	hub.Broadcast("late")
}
