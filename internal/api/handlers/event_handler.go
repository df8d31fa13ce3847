package handlers

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	apiContext "hookdash/internal/api/context"
	"hookdash/internal/pkg/errors"
	"hookdash/internal/platform/repositories"
)

type EventHandler struct {
	repo *repositories.EventRepository
}

func NewEventHandler(repo *repositories.EventRepository) *EventHandler {
	return &EventHandler{repo: repo}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	events, err := h.repo.List(limit, offset)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error(), nil)
		return
	}

	// Listing strips raw payloads; the detail endpoint carries them.
	for _, ev := range events {
		ev.RawPayload = nil
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	params := r.Context().Value(apiContext.Params).(httprouter.Params)
	id := params.ByName("event_id")

	ev, err := h.repo.GetByID(id)
	if err != nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Event not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, ev)
}
