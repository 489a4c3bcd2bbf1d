package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/linkgame/internal/model"
)

// GetSettings returns the conversation's settings, or the defaults if none are stored
func (c *Controller) GetSettings(ctx context.Context, id model.ConversationID) (*model.Settings, error) {
	return c.loadSettings(ctx, id)
}

// SetSize changes the board dimensions used by the next round
func (c *Controller) SetSize(ctx context.Context, id model.ConversationID, rows, cols int) (*model.Settings, error) {
	return c.updateSettings(ctx, id, func(settings *model.Settings) error {
		if err := model.ValidateDimensions(rows, cols, settings.MaxPatternTypes, c.boardService.AvailablePatterns()); err != nil {
			return err
		}
		settings.Rows = rows
		settings.Cols = cols
		return nil
	})
}

// SetPatternTypes changes how many distinct patterns the next round uses
func (c *Controller) SetPatternTypes(ctx context.Context, id model.ConversationID, n int) (*model.Settings, error) {
	return c.updateSettings(ctx, id, func(settings *model.Settings) error {
		if err := model.ValidateDimensions(settings.Rows, settings.Cols, n, c.boardService.AvailablePatterns()); err != nil {
			return err
		}
		settings.MaxPatternTypes = n
		return nil
	})
}

// ToggleTimed flips timed mode for the next round
func (c *Controller) ToggleTimed(ctx context.Context, id model.ConversationID) (*model.Settings, error) {
	return c.updateSettings(ctx, id, func(settings *model.Settings) error {
		settings.TimedMode = !settings.TimedMode
		return nil
	})
}

// ResetMaxScore clears the conversation's best score
func (c *Controller) ResetMaxScore(ctx context.Context, id model.ConversationID) (*model.Settings, error) {
	e := c.registry.acquire(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.IsPlaying() {
		return nil, model.ErrSettingsLocked
	}
	if err := c.storage.ResetScore(ctx, id); err != nil {
		return nil, err
	}

	c.logger.Info("max score reset", slog.String("conversation_id", string(id)))
	return c.loadSettings(ctx, id)
}

// updateSettings applies mutate under the session lock; settings are frozen while a round is live
func (c *Controller) updateSettings(ctx context.Context, id model.ConversationID, mutate func(*model.Settings) error) (*model.Settings, error) {
	e := c.registry.acquire(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.IsPlaying() {
		return nil, model.ErrSettingsLocked
	}

	settings, err := c.loadSettings(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(settings); err != nil {
		return nil, err
	}
	if err := c.storage.SaveSettings(ctx, settings); err != nil {
		c.logger.Error("failed to save settings",
			slog.String("conversation_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("settings updated",
		slog.String("conversation_id", string(id)),
		slog.Int("rows", settings.Rows),
		slog.Int("cols", settings.Cols),
		slog.Int("pattern_types", settings.MaxPatternTypes),
		slog.Bool("timed", settings.TimedMode),
		slog.Int("max_score", settings.MaxScore),
	)
	return settings, nil
}

// TopScores returns the best recorded scores across conversations
func (c *Controller) TopScores(ctx context.Context, limit int) ([]model.ScoreEntry, error) {
	return c.storage.TopScores(ctx, limit)
}
