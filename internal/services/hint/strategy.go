package hint

import (
	"errors"
	"fmt"

	"github.com/mcoot/linkgame/internal/dependencies/random"
	"github.com/mcoot/linkgame/internal/model"
)

// ErrUnknownStrategy is returned for a strategy name that is not recognised
var ErrUnknownStrategy = errors.New("unknown hint strategy")

// Strategy decides which linkable pair to suggest.
// Choose is only called with at least one candidate.
type Strategy interface {
	Choose(candidates []model.Accepted) model.Accepted
}

// RandomStrategy suggests any linkable pair
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// Choose returns a uniformly random candidate
func (s *RandomStrategy) Choose(candidates []model.Accepted) model.Accepted {
	return candidates[s.random.Intn(len(candidates))]
}

// FewestBendsStrategy suggests the pair with the simplest path, earliest in
// board order on ties
type FewestBendsStrategy struct{}

// Choose returns the candidate whose path has the fewest bends
func (FewestBendsStrategy) Choose(candidates []model.Accepted) model.Accepted {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Path.Bends() < best.Path.Bends() {
			best = c
		}
	}
	return best
}

// StrategyByName builds the named strategy; an empty name means random
func StrategyByName(name string, rnd random.Random) (Strategy, error) {
	switch name {
	case "", model.HintStrategyRandom:
		return NewRandomStrategy(rnd), nil
	case model.HintStrategyFewestBends:
		return FewestBendsStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
