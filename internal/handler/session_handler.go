package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pos-sync/internal/model"
	"pos-sync/internal/service"
	"pos-sync/internal/transport"
)

// SessionHandler handles cart session HTTP requests.
type SessionHandler struct {
	service service.SyncService
	logger  zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(service service.SyncService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With().Str("handler", "session").Logger(),
	}
}

// Create handles POST /api/sessions requests.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "site ID is required", h.logger)
		return
	}

	session, err := h.service.CreateSession(r.Context(), req.SiteID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// GetByID handles GET /api/sessions/{id} requests.
func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve session", h.logger)
		return
	}

	if session == nil {
		writeError(w, http.StatusNotFound, "session not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// SyncCart handles PUT /api/sessions/{id}/cart requests. The body is the
// full cart state; the response is the backend's canonical order after one
// reconciliation pass.
func (h *SessionHandler) SyncCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req model.SubmitCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	order, err := h.service.SyncCart(r.Context(), sessionID, req.Items)
	if err != nil {
		status := http.StatusInternalServerError
		message := "failed to sync cart"

		var domainErr *model.DomainError
		var transportErr *transport.TransportError
		switch {
		case errors.As(err, &domainErr):
			switch domainErr.Code {
			case model.ErrCodeSessionNotFound:
				status = http.StatusNotFound
			default:
				status = http.StatusBadRequest
			}
			message = domainErr.Message
		case errors.As(err, &transportErr):
			// Backend rejection or outage: the pass failed cleanly and the
			// session snapshot is untouched, so the client may retry as-is.
			status = http.StatusBadGateway
			message = transportErr.Message
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// sessionID extracts and parses the session ID path segment.
// Expecting paths: /api/sessions/{id} or /api/sessions/{id}/cart
func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	path = strings.TrimSuffix(path, "/cart")
	path = strings.TrimSuffix(path, "/")

	if path == "" {
		writeError(w, http.StatusBadRequest, "session ID is required", h.logger)
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session ID format", h.logger)
		return uuid.Nil, false
	}

	return sessionID, true
}
