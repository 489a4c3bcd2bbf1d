package storage

import (
	"context"

	"github.com/mcoot/linkgame/internal/model"
)

// Storage defines the interface for data persistence.
// Only per-conversation settings and scores are persisted; live sessions
// are held in memory by the game controller.
type Storage interface {
	// Settings operations
	SaveSettings(ctx context.Context, settings *model.Settings) error
	GetSettings(ctx context.Context, id model.ConversationID) (*model.Settings, error)
	DeleteSettings(ctx context.Context, id model.ConversationID) error

	// Score operations

	// RecordScore raises the conversation's max score to score if it is higher.
	// Returns true when a new record was set.
	RecordScore(ctx context.Context, id model.ConversationID, score int) (bool, error)
	// ResetScore sets the conversation's max score back to zero
	ResetScore(ctx context.Context, id model.ConversationID) error
	// TopScores returns the best scores across conversations, highest first
	TopScores(ctx context.Context, limit int) ([]model.ScoreEntry, error)
}
