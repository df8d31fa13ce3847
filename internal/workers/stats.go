// Package workers holds the background aggregation jobs.
package workers

import (
	"time"

	"github.com/rs/zerolog/log"

	"hookdash/internal/engine/series"
	"hookdash/internal/platform/models"
	"hookdash/internal/platform/repositories"
)

// StatsWorker periodically recomputes the trailing-window per-minute
// series and checkpoints the total and trend delta into
// stat_snapshots, keyed on the window start.
type StatsWorker struct {
	events    *repositories.EventRepository
	snapshots *repositories.SnapshotRepository
	window    time.Duration
	now       func() time.Time
}

func NewStatsWorker(events *repositories.EventRepository, snapshots *repositories.SnapshotRepository, window time.Duration, now func() time.Time) *StatsWorker {
	if now == nil {
		now = time.Now
	}
	if window <= 0 {
		window = series.DefaultWindow
	}
	return &StatsWorker{events: events, snapshots: snapshots, window: window, now: now}
}

func (w *StatsWorker) RunOnce() error {
	now := w.now()
	since := now.Add(-w.window)

	events, err := w.events.ListSince(since.UnixMilli())
	if err != nil {
		return err
	}

	points := series.Recent(events, now, w.window)

	snap := &models.StatSnapshot{
		WindowStart: since.Truncate(time.Minute).UnixMilli(),
		WindowEnd:   now.Truncate(time.Minute).UnixMilli(),
		Total:       series.Total(points),
		DeltaPct:    series.Delta(points),
	}
	return w.snapshots.Upsert(snap)
}

// Run loops until stop closes, writing one snapshot per interval.
func (w *StatsWorker) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.RunOnce(); err != nil {
				log.Error().Err(err).Msg("stats snapshot failed")
			}
		case <-stop:
			return
		}
	}
}
