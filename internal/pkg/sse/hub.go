package sse

import "sync"

// Event is a server-sent event delivered to subscribers.
type Event struct {
	Event string
	Data  interface{}
}

// Hub tracks connected subscribers by user and fans events out to them.
// Announcements are broadcast to everyone; targeted events (leave status
// changes) go to a single user.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a user and returns the event channel
// together with a cleanup function the caller must invoke on disconnect.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every connection of a single user.
// Sends are non-blocking, a full channel drops the event.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Broadcast sends an event to every connected subscriber.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, subs := range h.subscribers {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// ConnectedUsers returns the number of distinct users with a live connection.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
