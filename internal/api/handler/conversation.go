package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mcoot/linkgame/internal/api/response"
	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/services/game"
)

// ConversationHandler mints conversation identifiers for clients without a chat of their own
type ConversationHandler struct {
	gameController *game.Controller
	newID          func() string
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(gameController *game.Controller) *ConversationHandler {
	return &ConversationHandler{
		gameController: gameController,
		newID:          uuid.NewString,
	}
}

// ConversationResponse is returned when a conversation is created
type ConversationResponse struct {
	response.Conversation
	Settings response.Settings `json:"settings"`
}

// Create handles POST /api/v1/conversations
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(h.newID())

	settings, err := h.gameController.GetSettings(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, ConversationResponse{
		Conversation: response.Conversation{ID: string(id)},
		Settings:     response.SettingsFromModel(settings),
	})
}
