package stream

import (
	"sync"

	"hookdash/internal/platform/models"
)

// Feed is the in-memory event collection a dashboard view observes:
// one initial fetch merged with live inserts. Live arrivals are
// prepended so the raw list stays most-recent-first; anything needing
// time order (bucketing) re-sorts on its own.
//
// There is no id-based dedup across the fetch/subscribe race: a row
// observed by both paths appears twice. Known gap, kept as-is.
type Feed struct {
	mu     sync.RWMutex
	events []*models.WebhookEvent
}

func NewFeed() *Feed {
	return &Feed{}
}

// Prepend records a live insert at the head of the list.
func (f *Feed) Prepend(ev *models.WebhookEvent) {
	f.mu.Lock()
	f.events = append([]*models.WebhookEvent{ev}, f.events...)
	f.mu.Unlock()
}

// Merge appends the initial fetch behind any live rows that arrived
// first, so neither path loses entries whichever resolves first.
func (f *Feed) Merge(rows []*models.WebhookEvent) {
	f.mu.Lock()
	f.events = append(f.events, rows...)
	f.mu.Unlock()
}

// Snapshot copies the current collection for a reader.
func (f *Feed) Snapshot() []*models.WebhookEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*models.WebhookEvent, len(f.events))
	copy(out, f.events)
	return out
}

func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.events)
}
