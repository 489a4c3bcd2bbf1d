package model

import "time"

// SessionState represents the current phase of a conversation's session
type SessionState string

const (
	SessionStateIdle    SessionState = "idle"    // No round in progress
	SessionStatePlaying SessionState = "playing" // A board is live and accepts moves
)

// RoundID numbers the rounds of one session, starting at 1.
// A timeout carrying an older RoundID is stale.
type RoundID uint64

// RoundOutcome records how a round left the Playing state
type RoundOutcome string

const (
	RoundOutcomeCleared  RoundOutcome = "cleared"
	RoundOutcomeEnded    RoundOutcome = "ended"
	RoundOutcomeTimedOut RoundOutcome = "timed_out"
)

// Round is the board and bookkeeping for one play-through
type Round struct {
	ID        RoundID
	Board     *Board
	Patterns  []string // Patterns[i] labels identifier i+1
	StartedAt time.Time

	// Timed mode only
	Timed      bool
	TimeLimit  time.Duration
	Score      int
	Combo      int
	LastLinkAt time.Time
}

// Deadline returns when a timed round expires
func (r *Round) Deadline() time.Time {
	return r.StartedAt.Add(r.TimeLimit)
}

// TimeRemaining returns the time left in a timed round, never negative
func (r *Round) TimeRemaining(now time.Time) time.Duration {
	if !r.Timed {
		return 0
	}
	remaining := r.Deadline().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Label returns the display label for an identifier, or "" for Empty
func (r *Round) Label(id int) string {
	if id < 1 || id > len(r.Patterns) {
		return ""
	}
	return r.Patterns[id-1]
}

// Session is the per-conversation state machine data.
// It survives across rounds; Round is replaced on every start.
type Session struct {
	ConversationID ConversationID
	State          SessionState
	RoundCounter   RoundID
	Round          *Round // nil while Idle
	LastOutcome    RoundOutcome
}

// IsPlaying returns true while a round is live
func (s *Session) IsPlaying() bool {
	return s.State == SessionStatePlaying
}

// IsCurrentRound returns true if id names the live round
func (s *Session) IsCurrentRound(id RoundID) bool {
	return s.IsPlaying() && s.Round != nil && s.Round.ID == id
}

// MoveResult is what one submit-moves call produced
type MoveResult struct {
	RoundID  RoundID
	Cols     int        // width of the board the batch ran against
	Accepted []Accepted // in the order they were applied
	Rejected []Rejected // still rejected after the final pass
	Passes   int
	Cleared  bool
	Dangling bool // an odd token count left the last order token unused

	// Timed mode only
	Score     int
	NewRecord bool
}

// SessionSnapshot is a read-only copy of a session for callers outside the core
type SessionSnapshot struct {
	ConversationID ConversationID
	State          SessionState
	RoundID        RoundID
	LastOutcome    RoundOutcome
	Rows           int
	Cols           int
	Grid           [][]int // interior cells only
	Patterns       []string
	TilesRemaining int
	Timed          bool
	Score          int
	TimeRemaining  time.Duration
}

// Hint is a pair that can be linked on the live board
type Hint struct {
	RoundID  RoundID
	Cols     int
	Found    bool // false when no remaining pair can be linked
	Pair     Pair
	Path     Path
	Linkable int // number of pairs that could be linked right now
}
