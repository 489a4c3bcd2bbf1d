package redis

import (
	"fmt"

	"github.com/mcoot/linkgame/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "linkgame"

// settingsKey returns the Redis key for a conversation's Settings
func settingsKey(id model.ConversationID) string {
	return fmt.Sprintf("%s:settings:%s", keyPrefix, id)
}

// maxScoresIndexKey returns the Redis key for the ZSET of best scores
func maxScoresIndexKey() string {
	return fmt.Sprintf("%s:idx:max_scores", keyPrefix)
}
