package api

import (
	"net/http"
	"strconv"

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
)

// Listing bounds for GET /sources.
const (
	DefaultSourcesLimit = 20
	MaxSourcesLimit     = 100
)

// SourcesHandler exposes a sample of the indexed corpus for inspection.
type SourcesHandler struct {
	index driven.VectorIndex
}

// NewSourcesHandler creates a sources handler.
func NewSourcesHandler(index driven.VectorIndex) *SourcesHandler {
	return &SourcesHandler{index: index}
}

// RegisterRoutes registers source routes on the given mux.
func (h *SourcesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /sources", h.handleSources)
}

// SourcesResponse is the GET /sources response body.
type SourcesResponse struct {
	Count     int                  `json:"count"`
	Documents []domain.SampleEntry `json:"documents"`
}

// handleSources returns up to limit indexed entries.
func (h *SourcesHandler) handleSources(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", DefaultSourcesLimit, 1, MaxSourcesLimit)

	docs, err := h.index.Sample(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "index_error", err.Error())
		return
	}
	if docs == nil {
		docs = []domain.SampleEntry{}
	}

	writeJSON(w, http.StatusOK, SourcesResponse{
		Count:     len(docs),
		Documents: docs,
	})
}

// parseIntParam parses an integer query parameter with bounds checking.
func parseIntParam(r *http.Request, name string, defaultVal, min, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
