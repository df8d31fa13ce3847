// Package stream carries newly inserted events from the ingest path to
// live dashboard consumers: a fan-out hub plus the in-memory feed the
// aggregation endpoints observe.
package stream

import (
	"sync"

	"github.com/rs/zerolog/log"

	"hookdash/internal/platform/models"
)

const defaultBuffer = 64

// Hub fans inserted rows out to subscribers. Publish never blocks the
// ingest path: a subscriber whose buffer is full misses that event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]*Subscription
	nextID int
	buffer int
}

// Subscription is a live-delivery handle. Consumers read from C and
// must call Release on teardown; delivery stops and C closes.
type Subscription struct {
	C    <-chan *models.WebhookEvent
	ch   chan *models.WebhookEvent
	id   int
	hub  *Hub
	once sync.Once
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[int]*Subscription),
		buffer: buffer,
	}
}

func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan *models.WebhookEvent, h.buffer)
	sub := &Subscription{C: ch, ch: ch, id: h.nextID, hub: h}
	h.subs[h.nextID] = sub
	h.nextID++
	return sub
}

// Publish delivers ev to every subscriber that has buffer room.
func (h *Hub) Publish(ev *models.WebhookEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		select {
		case sub.ch <- ev:
		default:
			log.Warn().Str("event_id", ev.ID).Msg("subscriber buffer full, dropping live event")
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Release stops delivery and closes C. Safe to call more than once.
func (s *Subscription) Release() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.id)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}
