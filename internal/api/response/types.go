package response

import (
	"github.com/mcoot/linkgame/internal/model"
)

// Conversation is the response for a newly created conversation
type Conversation struct {
	ID string `json:"id"`
}

// Settings represents per-conversation settings
type Settings struct {
	ConversationID  string `json:"conversation_id"`
	Rows            int    `json:"rows"`
	Cols            int    `json:"cols"`
	MaxPatternTypes int    `json:"pattern_types"`
	TimedMode       bool   `json:"timed_mode"`
	MaxScore        int    `json:"max_score"`
}

// SettingsFromModel converts model.Settings
func SettingsFromModel(s *model.Settings) Settings {
	return Settings{
		ConversationID:  string(s.ConversationID),
		Rows:            s.Rows,
		Cols:            s.Cols,
		MaxPatternTypes: s.MaxPatternTypes,
		TimedMode:       s.TimedMode,
		MaxScore:        s.MaxScore,
	}
}

// Cell is a board position with its selection order
type Cell struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Order int `json:"order"`
}

// CellFromModel converts a Coordinate on a board with cols columns
func CellFromModel(c model.Coordinate, cols int) Cell {
	return Cell{Row: c.Row, Col: c.Col, Order: c.Order(cols)}
}

// Session represents a conversation's game session
type Session struct {
	ConversationID  string   `json:"conversation_id"`
	State           string   `json:"state"`
	Round           uint64   `json:"round"`
	LastOutcome     string   `json:"last_outcome,omitempty"`
	Rows            int      `json:"rows,omitempty"`
	Cols            int      `json:"cols,omitempty"`
	Grid            [][]int  `json:"grid,omitempty"`
	Patterns        []string `json:"patterns,omitempty"`
	TilesRemaining  int      `json:"tiles_remaining"`
	Timed           bool     `json:"timed"`
	Score           int      `json:"score"`
	TimeRemainingMs int64    `json:"time_remaining_ms,omitempty"`
}

// SessionFromModel converts a model.SessionSnapshot
func SessionFromModel(s *model.SessionSnapshot) Session {
	return Session{
		ConversationID:  string(s.ConversationID),
		State:           string(s.State),
		Round:           uint64(s.RoundID),
		LastOutcome:     string(s.LastOutcome),
		Rows:            s.Rows,
		Cols:            s.Cols,
		Grid:            s.Grid,
		Patterns:        s.Patterns,
		TilesRemaining:  s.TilesRemaining,
		Timed:           s.Timed,
		Score:           s.Score,
		TimeRemainingMs: s.TimeRemaining.Milliseconds(),
	}
}

// LinkedPair is an accepted pair with the corners of its connecting path
type LinkedPair struct {
	A       Cell   `json:"a"`
	B       Cell   `json:"b"`
	Bends   int    `json:"bends"`
	Corners []Cell `json:"corners"`
}

// RejectedPair is a pair that could not be linked
type RejectedPair struct {
	A      *Cell  `json:"a,omitempty"` // nil when the selection could not be decoded
	B      *Cell  `json:"b,omitempty"`
	Reason string `json:"reason"`
}

// LinkResult is the response for submitting a batch of orders
type LinkResult struct {
	Round     uint64         `json:"round"`
	Accepted  []LinkedPair   `json:"accepted"`
	Rejected  []RejectedPair `json:"rejected"`
	Passes    int            `json:"passes"`
	Cleared   bool           `json:"cleared"`
	Dangling  bool           `json:"dangling_order,omitempty"`
	Score     int            `json:"score"`
	NewRecord bool           `json:"new_record,omitempty"`
	Session   *Session       `json:"session,omitempty"`
}

// LinkResultFromModel converts a model.MoveResult
func LinkResultFromModel(r *model.MoveResult) LinkResult {
	cols := r.Cols
	result := LinkResult{
		Round:     uint64(r.RoundID),
		Accepted:  make([]LinkedPair, 0, len(r.Accepted)),
		Rejected:  make([]RejectedPair, 0, len(r.Rejected)),
		Passes:    r.Passes,
		Cleared:   r.Cleared,
		Dangling:  r.Dangling,
		Score:     r.Score,
		NewRecord: r.NewRecord,
	}

	for _, a := range r.Accepted {
		corners := a.Path.Corners()
		cells := make([]Cell, len(corners))
		for i, c := range corners {
			cells[i] = CellFromModel(c, cols)
		}
		result.Accepted = append(result.Accepted, LinkedPair{
			A:       CellFromModel(a.Pair.A, cols),
			B:       CellFromModel(a.Pair.B, cols),
			Bends:   a.Path.Bends(),
			Corners: cells,
		})
	}

	for _, rej := range r.Rejected {
		result.Rejected = append(result.Rejected, RejectedPair{
			A:      optionalCell(rej.Pair.A, cols),
			B:      optionalCell(rej.Pair.B, cols),
			Reason: string(rej.Reason),
		})
	}
	return result
}

func optionalCell(c model.Coordinate, cols int) *Cell {
	if !c.IsDecoded() {
		return nil
	}
	cell := CellFromModel(c, cols)
	return &cell
}

// Leaderboard lists the best scores across conversations
type Leaderboard struct {
	Entries []model.ScoreEntry `json:"entries"`
}

// Hint is a suggested pair, or Found false when the board is stuck
type Hint struct {
	Round    uint64      `json:"round"`
	Found    bool        `json:"found"`
	Pair     *LinkedPair `json:"pair,omitempty"`
	Linkable int         `json:"linkable"`
}

// HintFromModel converts a model.Hint
func HintFromModel(h *model.Hint) Hint {
	resp := Hint{
		Round:    uint64(h.RoundID),
		Found:    h.Found,
		Linkable: h.Linkable,
	}
	if !h.Found {
		return resp
	}

	corners := h.Path.Corners()
	cells := make([]Cell, len(corners))
	for i, c := range corners {
		cells[i] = CellFromModel(c, h.Cols)
	}
	resp.Pair = &LinkedPair{
		A:       CellFromModel(h.Pair.A, h.Cols),
		B:       CellFromModel(h.Pair.B, h.Cols),
		Bends:   h.Path.Bends(),
		Corners: cells,
	}
	return resp
}
