package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"hookdash/internal/engine/ingest"
	"hookdash/internal/engine/normalize"
)

type WebhookHandler struct {
	svc           *ingest.Service
	signingSecret string
	maxBodyBytes  int64
}

func NewWebhookHandler(svc *ingest.Service, signingSecret string, maxBodyBytes int64) *WebhookHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &WebhookHandler{svc: svc, signingSecret: signingSecret, maxBodyBytes: maxBodyBytes}
}

// Receive ingests one provider callback. 200 with the stored row on
// success, 400 for anything structurally wrong (never persisted), 500
// with the sink error when the insert is rejected.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r, h.maxBodyBytes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if h.signingSecret != "" {
		if err := ingest.VerifySignature(h.signingSecret, body, r.Header.Get(ingest.SignatureHeader)); err != nil {
			log.Warn().Str("remote", r.RemoteAddr).Msg("rejected webhook with bad signature")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
	}

	ev, err := h.svc.Ingest(body)
	if err != nil {
		if errors.Is(err, normalize.ErrMalformedPayload) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Sink failure: the error passes through verbatim.
		log.Error().Err(err).Msg("webhook insert failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    ev,
	})
}

func readBody(r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()
	lr := io.LimitReader(r.Body, limit+1)

	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, errors.New("failed to read body")
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
