package model

// ConversationID identifies the chat/channel a session belongs to
type ConversationID string

// Settings are the persisted per-conversation preferences read at start
type Settings struct {
	ConversationID  ConversationID `json:"conversation_id"`
	Rows            int            `json:"rows"`
	Cols            int            `json:"cols"`
	MaxPatternTypes int            `json:"max_pattern_types"`
	TimedMode       bool           `json:"timed_mode"`
	MaxScore        int            `json:"max_score"`
}

// DefaultSettings returns the settings a new conversation starts with
func DefaultSettings(id ConversationID) *Settings {
	return &Settings{
		ConversationID:  id,
		Rows:            6,
		Cols:            8,
		MaxPatternTypes: 8,
		TimedMode:       false,
		MaxScore:        0,
	}
}

// ScoreEntry is one line of the leaderboard
type ScoreEntry struct {
	ConversationID ConversationID `json:"conversation_id"`
	Score          int            `json:"score"`
}
