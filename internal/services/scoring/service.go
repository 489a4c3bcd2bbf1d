package scoring

import (
	"time"

	"github.com/mcoot/linkgame/internal/model"
)

// Config holds the timed-mode scoring rules
type Config struct {
	PairPoints         int           // awarded for every removed pair
	ComboBonus         int           // extra points per consecutive quick link
	ComboWindow        time.Duration // max gap between links that keeps a combo alive
	TimeBonusPerSecond int           // awarded per whole second left when the board clears
}

// DefaultConfig returns the standard scoring rules
func DefaultConfig() Config {
	return Config{
		PairPoints:         10,
		ComboBonus:         5,
		ComboWindow:        5 * time.Second,
		TimeBonusPerSecond: 1,
	}
}

// Service computes scores for timed rounds
type Service struct {
	cfg Config
}

// New creates a new ScoringService
func New(cfg Config) *Service {
	return &Service{
		cfg: cfg,
	}
}

// ScoreLinks awards points for n pairs linked at now, updating the round's
// combo state and score. Returns the points awarded.
// Untimed rounds never score.
func (s *Service) ScoreLinks(round *model.Round, n int, now time.Time) int {
	if !round.Timed || n <= 0 {
		return 0
	}

	if round.Combo > 0 && !round.LastLinkAt.IsZero() && now.Sub(round.LastLinkAt) <= s.cfg.ComboWindow {
		round.Combo++
	} else {
		round.Combo = 1
	}

	// Each further pair in the same submission extends the combo by one
	points := 0
	for i := 0; i < n; i++ {
		points += s.cfg.PairPoints + s.cfg.ComboBonus*(round.Combo-1+i)
	}
	round.Combo += n - 1
	round.LastLinkAt = now
	round.Score += points
	return points
}

// ClearBonus awards the remaining-time bonus for clearing a timed round
func (s *Service) ClearBonus(round *model.Round, now time.Time) int {
	if !round.Timed {
		return 0
	}
	seconds := int(round.TimeRemaining(now) / time.Second)
	bonus := seconds * s.cfg.TimeBonusPerSecond
	round.Score += bonus
	return bonus
}

// TimeLimit returns the time budget for a board of the given size
func TimeLimit(rows, cols int, perPair time.Duration) time.Duration {
	return time.Duration(rows*cols/2) * perPair
}
