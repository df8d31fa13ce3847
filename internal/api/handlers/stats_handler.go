package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hookdash/internal/engine/series"
	"hookdash/internal/engine/stream"
	"hookdash/internal/pkg/errors"
	"hookdash/internal/platform/repositories"
)

type StatsHandler struct {
	watcher   *stream.Watcher
	snapshots *repositories.SnapshotRepository
	window    time.Duration
	now       func() time.Time
}

func NewStatsHandler(watcher *stream.Watcher, snapshots *repositories.SnapshotRepository, window time.Duration, now func() time.Time) *StatsHandler {
	if now == nil {
		now = time.Now
	}
	if window <= 0 {
		window = series.DefaultWindow
	}
	return &StatsHandler{watcher: watcher, snapshots: snapshots, window: window, now: now}
}

// Recent serves the sparkline: trailing-window totals, per-minute
// series, and the half-over-half trend delta.
func (h *StatsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	points := series.Recent(h.watcher.Events(), h.now(), h.window)

	writeJSON(w, http.StatusOK, struct {
		Total     int            `json:"total"`
		ChangePct float64        `json:"change_pct"`
		Series    []series.Point `json:"series"`
	}{
		Total:     series.Total(points),
		ChangePct: series.Delta(points),
		Series:    points,
	})
}

// Minutely serves the full-range area chart series.
func (h *StatsHandler) Minutely(w http.ResponseWriter, r *http.Request) {
	points := series.Build(series.BucketByMinute(h.watcher.Events()))

	writeJSON(w, http.StatusOK, struct {
		Series []series.Point `json:"series"`
	}{Series: points})
}

func (h *StatsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	snaps, err := h.snapshots.List(limit)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error(), nil)
		return
	}

	writeJSON(w, http.StatusOK, snaps)
}
