package handlers

import (
	"fmt"
	"net/http"

	"hookdash/internal/engine/stream"
	"hookdash/internal/platform/repositories"
)

// MetricsHandler exports a small plain-text snapshot in the Prometheus
// exposition format, without pulling in the client library.
type MetricsHandler struct {
	events *repositories.EventRepository
	hub    *stream.Hub
}

func NewMetricsHandler(events *repositories.EventRepository, hub *stream.Hub) *MetricsHandler {
	return &MetricsHandler{events: events, hub: hub}
}

func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	total, err := h.events.Count()
	if err != nil {
		total = -1
	}

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "# HELP hookdash_up Is the server up\n")
	fmt.Fprintf(w, "# TYPE hookdash_up gauge\n")
	fmt.Fprintf(w, "hookdash_up 1\n")
	fmt.Fprintf(w, "# HELP hookdash_events_total Stored webhook events\n")
	fmt.Fprintf(w, "# TYPE hookdash_events_total counter\n")
	fmt.Fprintf(w, "hookdash_events_total %d\n", total)
	fmt.Fprintf(w, "# HELP hookdash_stream_subscribers Live stream subscribers\n")
	fmt.Fprintf(w, "# TYPE hookdash_stream_subscribers gauge\n")
	fmt.Fprintf(w, "hookdash_stream_subscribers %d\n", h.hub.SubscriberCount())
}
