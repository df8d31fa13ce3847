// Package ingest runs the server-side pipeline: normalize one raw
// webhook body, insert it once, publish the stored row to live
// subscribers.
package ingest

import (
	"github.com/rs/zerolog/log"

	"hookdash/internal/engine/normalize"
	"hookdash/internal/engine/stream"
	"hookdash/internal/platform/models"
)

// Inserter is the write side of the persistence sink.
type Inserter interface {
	Insert(ins *models.EventInsert) (*models.WebhookEvent, error)
}

type Service struct {
	store Inserter
	hub   *stream.Hub
}

func NewService(store Inserter, hub *stream.Hub) *Service {
	return &Service{store: store, hub: hub}
}

// Ingest processes one inbound body. Exactly one insert attempt, no
// retry: a sink error surfaces verbatim and nothing is committed.
// Redelivery of the same provider event makes a duplicate row; there
// is no idempotency key check.
func (s *Service) Ingest(body []byte) (*models.WebhookEvent, error) {
	ins, err := normalize.Normalize(body)
	if err != nil {
		return nil, err
	}

	ev, err := s.store.Insert(ins)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("event_id", ev.ID).
		Str("type", ev.Type).
		Str("status", ev.Status).
		Msg("webhook event stored")

	if s.hub != nil {
		s.hub.Publish(ev)
	}
	return ev, nil
}
