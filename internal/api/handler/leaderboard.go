package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/linkgame/internal/api/response"
	"github.com/mcoot/linkgame/internal/services/game"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// LeaderboardHandler serves the best scores across conversations
type LeaderboardHandler struct {
	gameController *game.Controller
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(gameController *game.Controller) *LeaderboardHandler {
	return &LeaderboardHandler{gameController: gameController}
}

// Get handles GET /api/v1/leaderboard?limit=N
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLeaderboardLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	entries, err := h.gameController.TopScores(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Leaderboard{Entries: entries})
}
