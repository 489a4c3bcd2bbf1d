package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/linkgame/internal/events"
	"github.com/mcoot/linkgame/internal/model"
)

// EventsHandler streams a conversation's game events over WebSocket
type EventsHandler struct {
	hubManager *events.HubManager
	logger     *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hubManager *events.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		hubManager: hubManager,
		logger:     logger,
	}
}

// Stream handles GET /api/v1/conversations/{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	hub := h.hubManager.GetOrCreateHub(id)
	// The upgrader has already written an HTTP error when this fails
	if err := events.ServeWS(w, r, hub); err != nil {
		h.logger.Warn("websocket upgrade failed",
			slog.String("conversation_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
}
