package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/linkgame/internal/api/handler"
	"github.com/mcoot/linkgame/internal/api/middleware"
	"github.com/mcoot/linkgame/internal/events"
	"github.com/mcoot/linkgame/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	HubManager     *events.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	conversationHandler := handler.NewConversationHandler(cfg.GameController)
	settingsHandler := handler.NewSettingsHandler(cfg.GameController)
	gameHandler := handler.NewGameHandler(cfg.GameController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.GameController)
	eventsHandler := handler.NewEventsHandler(cfg.HubManager, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/conversations", conversationHandler.Create).Methods(http.MethodPost)

	conversations := api.PathPrefix("/conversations/{id}").Subrouter()

	// Settings routes
	conversations.HandleFunc("/settings", settingsHandler.Get).Methods(http.MethodGet)
	conversations.HandleFunc("/settings", settingsHandler.Update).Methods(http.MethodPatch)
	conversations.HandleFunc("/settings/reset-score", settingsHandler.ResetScore).Methods(http.MethodPost)

	// Game routes
	conversations.HandleFunc("/game", gameHandler.Start).Methods(http.MethodPost)
	conversations.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	conversations.HandleFunc("/game", gameHandler.End).Methods(http.MethodDelete)
	conversations.HandleFunc("/game/shuffle", gameHandler.Shuffle).Methods(http.MethodPost)
	conversations.HandleFunc("/game/link", gameHandler.Link).Methods(http.MethodPost)
	conversations.HandleFunc("/game/hint", gameHandler.Hint).Methods(http.MethodGet)

	conversations.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
