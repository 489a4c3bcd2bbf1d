package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Conversation:
		o.printConversation(v)
	case Settings:
		o.printSettings(v)
	case Session:
		o.printSession(v)
	case LinkResult:
		o.printLinkResult(v)
	case Hint:
		o.printHint(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Conversation response type (matches API)
type Conversation struct {
	ID       string    `json:"id"`
	Settings *Settings `json:"settings,omitempty"`
}

// Settings response type
type Settings struct {
	ConversationID string `json:"conversation_id"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	PatternTypes   int    `json:"pattern_types"`
	TimedMode      bool   `json:"timed_mode"`
	MaxScore       int    `json:"max_score"`
}

// Session response type
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

// Cell response type
type Cell struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Order int `json:"order"`
}

// LinkedPair response type
type LinkedPair struct {
	A       Cell   `json:"a"`
	B       Cell   `json:"b"`
	Bends   int    `json:"bends"`
	Corners []Cell `json:"corners"`
}

// RejectedPair response type
type RejectedPair struct {
	A      *Cell  `json:"a,omitempty"`
	B      *Cell  `json:"b,omitempty"`
	Reason string `json:"reason"`
}

// LinkResult response type
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

// Hint response type
type Hint struct {
	Round    uint64      `json:"round"`
	Found    bool        `json:"found"`
	Pair     *LinkedPair `json:"pair,omitempty"`
	Linkable int         `json:"linkable"`
}

// ScoreEntry response type
type ScoreEntry struct {
	ConversationID string `json:"conversation_id"`
	Score          int    `json:"score"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []ScoreEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printConversation(c Conversation) {
	fmt.Fprintf(o.w, "Conversation: %s\n", c.ID)
	if c.Settings != nil {
		o.printSettings(*c.Settings)
	}
}

func (o *Output) printSettings(s Settings) {
	timed := "off"
	if s.TimedMode {
		timed = "on"
	}
	fmt.Fprintf(o.w, "Board: %dx%d\n", s.Rows, s.Cols)
	fmt.Fprintf(o.w, "Pattern Types: %d\n", s.PatternTypes)
	fmt.Fprintf(o.w, "Timed: %s\n", timed)
	fmt.Fprintf(o.w, "Best Score: %d\n", s.MaxScore)
}

func (o *Output) printSession(s Session) {
	fmt.Fprintf(o.w, "Round: %d\n", s.Round)
	fmt.Fprintf(o.w, "State: %s\n", s.State)
	if s.LastOutcome != "" && s.State != "playing" {
		fmt.Fprintf(o.w, "Last Outcome: %s\n", s.LastOutcome)
	}
	if s.State != "playing" {
		return
	}

	fmt.Fprintf(o.w, "Tiles Left: %d\n", s.TilesRemaining)
	if s.Timed {
		remaining := time.Duration(s.TimeRemainingMs) * time.Millisecond
		fmt.Fprintf(o.w, "Score: %d\n", s.Score)
		fmt.Fprintf(o.w, "Time Left: %s\n", remaining.Truncate(time.Second))
	}
	fmt.Fprintln(o.w)
	o.printBoard(s)
}

// printBoard prints each tile's label followed by its cell order, which is what "game link" takes
func (o *Output) printBoard(s Session) {
	if len(s.Grid) == 0 {
		return
	}

	width := len(fmt.Sprint(s.Rows*s.Cols - 1))
	for r, row := range s.Grid {
		cells := make([]string, len(row))
		for c, id := range row {
			order := r*s.Cols + c
			label := "."
			if id > 0 && id <= len(s.Patterns) {
				label = s.Patterns[id-1]
			} else if id > 0 {
				label = fmt.Sprint(id)
			}
			cells[c] = fmt.Sprintf("%s %*d", label, width, order)
		}
		fmt.Fprintf(o.w, "  %s\n", strings.Join(cells, "  "))
	}
}

func (o *Output) printLinkResult(l LinkResult) {
	for _, a := range l.Accepted {
		fmt.Fprintf(o.w, "Linked %d-%d (%d bends)\n", a.A.Order, a.B.Order, a.Bends)
	}
	for _, r := range l.Rejected {
		fmt.Fprintf(o.w, "Rejected %s-%s: %s\n", orderOrUnknown(r.A), orderOrUnknown(r.B), r.Reason)
	}
	if l.Dangling {
		fmt.Fprintln(o.w, "Ignored the last order: it has no partner")
	}

	if l.Cleared {
		fmt.Fprintln(o.w, "Board cleared!")
		if l.Score > 0 {
			fmt.Fprintf(o.w, "Final Score: %d\n", l.Score)
		}
		if l.NewRecord {
			fmt.Fprintln(o.w, "New best score!")
		}
		return
	}

	if l.Session != nil && l.Session.State == "playing" {
		fmt.Fprintln(o.w)
		o.printSession(*l.Session)
	}
}

func (o *Output) printHint(h Hint) {
	if !h.Found || h.Pair == nil {
		fmt.Fprintln(o.w, "No linkable pairs, try shuffling")
		return
	}
	fmt.Fprintf(o.w, "Try %d-%d (%d bends)\n", h.Pair.A.Order, h.Pair.B.Order, h.Pair.Bends)
	fmt.Fprintf(o.w, "Linkable pairs: %d\n", h.Linkable)
}

func orderOrUnknown(c *Cell) string {
	if c == nil {
		return "?"
	}
	return fmt.Sprint(c.Order)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	if len(l.Entries) == 0 {
		fmt.Fprintln(o.w, "No scores yet")
		return
	}
	for i, e := range l.Entries {
		fmt.Fprintf(o.w, "%3d. %-36s %d\n", i+1, e.ConversationID, e.Score)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
