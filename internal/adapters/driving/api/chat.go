package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
	"github.com/campuslabs/ubot/internal/core/ports/driving"
	"github.com/campuslabs/ubot/internal/logger"
)

// ChatHandler handles the main question/answer endpoint.
//
// Endpoint:
//   - POST /chat - one question in, one grounded answer with sources out
type ChatHandler struct {
	answers  driving.AnswerService
	sessions driven.SessionStore
	topK     int
}

// NewChatHandler creates a chat handler.
func NewChatHandler(answers driving.AnswerService, sessions driven.SessionStore, topK int) *ChatHandler {
	return &ChatHandler{
		answers:  answers,
		sessions: sessions,
		topK:     topK,
	}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /chat", h.handleChat)
}

// ChatRequest is the POST /chat request body.
type ChatRequest struct {
	// SessionID is optional; omitting it starts a fresh session.
	SessionID string `json:"session_id"`

	// Message is the user's question.
	Message string `json:"message"`
}

// ChatResponse is the POST /chat response body.
type ChatResponse struct {
	SessionID string          `json:"session_id"`
	Answer    string          `json:"answer"`
	Sources   []domain.Source `json:"sources"`
}

// handleChat runs the full pipeline for one question. The session ID is
// echoed back (or minted when absent) so the client can thread follow-ups.
func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "message cannot be empty")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history, err := h.sessions.History(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session_error", err.Error())
		return
	}

	answer, err := h.answers.GenerateAnswer(r.Context(), req.Message, history, h.topK)
	if err != nil {
		h.writeAnswerError(w, err)
		return
	}

	// The exchange is stored only after a successful answer, so a failed
	// request never pollutes the session history.
	err = h.sessions.Append(r.Context(), sessionID,
		domain.ConversationTurn{Role: domain.RoleUser, Content: req.Message},
		domain.ConversationTurn{Role: domain.RoleAssistant, Content: answer.Text},
	)
	if err != nil {
		logger.Warn("failed to record session history: %v", err)
	}

	sources := answer.Sources
	if sources == nil {
		sources = []domain.Source{}
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		SessionID: sessionID,
		Answer:    answer.Text,
		Sources:   sources,
	})
}

// writeAnswerError maps pipeline failures to HTTP statuses.
func (h *ChatHandler) writeAnswerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrProviderUnavailable):
		writeError(w, http.StatusServiceUnavailable, "provider_unavailable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "generation_failed", err.Error())
	}
}
