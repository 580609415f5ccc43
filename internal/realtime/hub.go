// Package realtime fans group events out to connected clients over
// server-sent events. Delivery is best effort; slow subscribers drop
// messages rather than block publishers.
package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kberg/flashdeck/internal/logger"
)

// Event is one message delivered to subscribers of a topic.
type Event struct {
	ID    uuid.UUID `json:"id"`
	Topic string    `json:"topic"`
	Type  string    `json:"type"`
	Data  any       `json:"data,omitempty"`
	At    time.Time `json:"at"`
}

// Subscription is one client's feed of a topic. Cancel must be called when
// the client disconnects.
type Subscription struct {
	C     <-chan Event
	ch    chan Event
	topic string
	hub   *Hub
	once  sync.Once
}

// Cancel detaches the subscription from the hub and closes C.
func (s *Subscription) Cancel() {
	s.hub.remove(s)
	s.close()
}

func (s *Subscription) close() {
	s.once.Do(func() { close(s.ch) })
}

// Hub routes events to topic subscribers.
type Hub struct {
	mu     sync.RWMutex
	log    *logger.Logger
	buffer int
	subs   map[string]map[*Subscription]struct{}
	closed bool
}

// NewHub creates a hub whose subscriptions buffer up to buffer events each.
func NewHub(log *logger.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		log:    log.WithPrefix("realtime"),
		buffer: buffer,
		subs:   make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe attaches a new subscriber to a topic. On a closed hub the
// returned subscription is already cancelled.
func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan Event, h.buffer)
	sub := &Subscription{C: ch, ch: ch, topic: topic, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.close()
		return sub
	}
	subs, ok := h.subs[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.subs[topic] = subs
	}
	subs[sub] = struct{}{}
	h.log.Debug("subscribed: topic=%s subscribers=%d", topic, len(subs))
	return sub
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subs[sub.topic]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.subs, sub.topic)
		}
	}
}

// Publish delivers an event to every subscriber of its topic. Subscribers
// with a full buffer miss the event.
func (h *Hub) Publish(event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for sub := range h.subs[event.Topic] {
		select {
		case sub.ch <- event:
		default:
			h.log.Warn("dropping event, subscriber buffer full: topic=%s type=%s", event.Topic, event.Type)
		}
	}
}

// Subscribers reports how many clients are attached to a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Close detaches every subscriber and closes their channels. Publish and
// Subscribe become no-ops afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for topic, subs := range h.subs {
		for sub := range subs {
			sub.close()
		}
		delete(h.subs, topic)
	}
}
