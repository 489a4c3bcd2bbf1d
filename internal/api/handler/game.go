package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/linkgame/internal/api/request"
	"github.com/mcoot/linkgame/internal/api/response"
	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{gameController: gameController}
}

// Start handles POST /api/v1/conversations/{id}/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	snap, err := h.gameController.Start(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(snap))
}

// Get handles GET /api/v1/conversations/{id}/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	snap, err := h.gameController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(snap))
}

// End handles DELETE /api/v1/conversations/{id}/game
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	if err := h.gameController.End(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Shuffle handles POST /api/v1/conversations/{id}/game/shuffle
func (h *GameHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	snap, err := h.gameController.Reshuffle(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(snap))
}

// Hint handles GET /api/v1/conversations/{id}/game/hint
func (h *GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	hint, err := h.gameController.Hint(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintFromModel(hint))
}

// Link handles POST /api/v1/conversations/{id}/game/link
func (h *GameHandler) Link(w http.ResponseWriter, r *http.Request) {
	id := model.ConversationID(mux.Vars(r)["id"])

	var req request.LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.Orders) < 2 {
		WriteError(w, NewInvalidRequestError("at least two orders are required"))
		return
	}

	result, err := h.gameController.SubmitOrders(r.Context(), id, req.Tokens())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.LinkResultFromModel(result)
	snap, err := h.gameController.GetSession(r.Context(), id)
	if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		WriteError(w, err)
		return
	}
	if snap != nil {
		session := response.SessionFromModel(snap)
		resp.Session = &session
	}

	response.JSON(w, http.StatusOK, resp)
}
