package stream

import (
	"github.com/rs/zerolog/log"

	"hookdash/internal/platform/models"
)

// Lister is the read side of the sink the watcher mirrors.
type Lister interface {
	ListAll() ([]*models.WebhookEvent, error)
}

// Watcher keeps a live in-memory mirror of the event table for the
// aggregation endpoints. It subscribes before fetching so no insert
// falls between the two; a failed fetch logs and leaves the feed with
// whatever the subscription delivers.
type Watcher struct {
	feed *Feed
	sub  *Subscription
	done chan struct{}
}

func NewWatcher(hub *Hub, store Lister) *Watcher {
	w := &Watcher{
		feed: NewFeed(),
		sub:  hub.Subscribe(),
		done: make(chan struct{}),
	}
	go w.loop()

	rows, err := store.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("initial event fetch failed, feed starts empty")
	} else {
		w.feed.Merge(rows)
	}
	return w
}

func (w *Watcher) loop() {
	defer close(w.done)
	for ev := range w.sub.C {
		w.feed.Prepend(ev)
	}
}

// Events returns a copy of the mirrored collection, most recent live
// arrivals first.
func (w *Watcher) Events() []*models.WebhookEvent {
	return w.feed.Snapshot()
}

// Close releases the subscription and waits for the delivery loop to
// drain.
func (w *Watcher) Close() {
	w.sub.Release()
	<-w.done
}
