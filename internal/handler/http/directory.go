package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, healthResponse{Status: "ok"})
}

func (h *Handler) directoryStats(w http.ResponseWriter, r *http.Request) {
	stats := h.services.DirectoryService.Stats(r.Context())
	writeJSON(w, r, stats)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write response body")
	}
}
