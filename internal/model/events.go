package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventRoundStarted  EventType = "round_started"
	EventTilesLinked   EventType = "tiles_linked"
	EventBoardShuffled EventType = "board_shuffled"
	EventRoundCleared  EventType = "round_cleared"
	EventRoundEnded    EventType = "round_ended"
	EventRoundTimedOut EventType = "round_timed_out"
)

// Event is the base structure for all events
type Event struct {
	Type           EventType      `json:"type"`
	Timestamp      time.Time      `json:"timestamp"`
	ConversationID ConversationID `json:"conversation_id"`
	RoundID        RoundID        `json:"round_id"`
	Payload        any            `json:"payload,omitempty"`
}

// RoundStartedPayload contains data for round started events
type RoundStartedPayload struct {
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Patterns  []string      `json:"patterns"`
	TimeLimit time.Duration `json:"time_limit,omitempty"`
}

// LinkedPair is one removed pair with the path a renderer highlights
type LinkedPair struct {
	A       Coordinate   `json:"a"`
	B       Coordinate   `json:"b"`
	Corners []Coordinate `json:"corners"`
}

// TilesLinkedPayload contains data for tiles linked events
type TilesLinkedPayload struct {
	Pairs          []LinkedPair `json:"pairs"`
	TilesRemaining int          `json:"tiles_remaining"`
	Score          int          `json:"score,omitempty"`
}

// RoundOverPayload contains data for cleared, ended and timed out events
type RoundOverPayload struct {
	Outcome   RoundOutcome `json:"outcome"`
	Score     int          `json:"score,omitempty"`
	NewRecord bool         `json:"new_record,omitempty"`
}
