package api

import (
	"net/http"

	"github.com/campuslabs/ubot/internal/core/ports/driven"
)

// HealthHandler reports service liveness and index size.
type HealthHandler struct {
	index driven.VectorIndex
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(index driven.VectorIndex) *HealthHandler {
	return &HealthHandler{index: index}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
}

// HealthResponse is the GET /health response body.
type HealthResponse struct {
	Status string `json:"status"`
	Chunks int    `json:"chunks,omitempty"`
}

// handleHealth reports ok as long as the process serves requests. A failing
// index count degrades the payload, not the status: answering still works
// in degraded mode.
func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if h.index != nil {
		if count, err := h.index.Count(r.Context()); err == nil {
			resp.Chunks = count
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
