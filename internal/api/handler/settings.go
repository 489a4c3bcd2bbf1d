package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/linkgame/internal/api/request"
	"github.com/mcoot/linkgame/internal/api/response"
	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/services/game"
)

// SettingsHandler handles per-conversation settings endpoints
type SettingsHandler struct {
	gameController *game.Controller
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(gameController *game.Controller) *SettingsHandler {
	return &SettingsHandler{gameController: gameController}
}

// Get handles GET /api/v1/conversations/{id}/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	settings, err := h.gameController.GetSettings(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsFromModel(settings))
}

// Update handles PATCH /api/v1/conversations/{id}/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	var req request.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if (req.Rows == nil) != (req.Cols == nil) {
		WriteError(w, NewInvalidRequestError("rows and cols must be given together"))
		return
	}

	settings, err := h.gameController.GetSettings(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if req.Rows != nil {
		if settings, err = h.gameController.SetSize(r.Context(), id, *req.Rows, *req.Cols); err != nil {
			WriteError(w, err)
			return
		}
	}
	if req.PatternTypes != nil {
		if settings, err = h.gameController.SetPatternTypes(r.Context(), id, *req.PatternTypes); err != nil {
			WriteError(w, err)
			return
		}
	}
	if req.TimedMode != nil && *req.TimedMode != settings.TimedMode {
		if settings, err = h.gameController.ToggleTimed(r.Context(), id); err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.SettingsFromModel(settings))
}

// ResetScore handles POST /api/v1/conversations/{id}/settings/reset-score
func (h *SettingsHandler) ResetScore(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	settings, err := h.gameController.ResetMaxScore(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsFromModel(settings))
}
