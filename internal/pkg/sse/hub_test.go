package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	hub.Publish("user-1", Event{Event: "leave_status_changed", Data: map[string]string{"id": "r1"}})

	select {
	case event := <-ch:
		assert.Equal(t, "leave_status_changed", event.Event)
	default:
		t.Fatal("expected event on subscriber channel")
	}
}

func TestPublish_OtherUserUnaffected(t *testing.T) {
	hub := NewHub()

	_, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.Publish("user-1", Event{Event: "leave_status_changed"})

	select {
	case <-ch2:
		t.Fatal("user-2 should not receive user-1 events")
	default:
	}
}

func TestBroadcast(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-2")
	defer cleanup2()

	hub.Broadcast(Event{Event: "announcement"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, "announcement", event.Event)
		default:
			t.Fatal("expected broadcast on every subscriber channel")
		}
	}
}

func TestCleanup(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	require.Equal(t, 1, hub.ConnectedUsers())

	cleanup()
	assert.Equal(t, 0, hub.ConnectedUsers())

	// Publishing after cleanup must not panic.
	hub.Publish("user-1", Event{Event: "announcement"})
}

func TestPublish_FullChannelDropsEvent(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish("user-1", Event{Event: "announcement"})
	}

	assert.Len(t, ch, cap(ch))
}
