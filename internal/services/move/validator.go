package move

import (
	"github.com/mcoot/linkgame/internal/model"
)

// PathFinder finds a link between two cells under some bend limit
type PathFinder interface {
	Find(b *model.Board, p1, p2 model.Coordinate) (model.Path, bool)
}

// Validator turns submitted pairs into verdicts
type Validator struct {
	finder PathFinder
}

// NewValidator creates a Validator backed by finder
func NewValidator(finder PathFinder) *Validator {
	return &Validator{finder: finder}
}

// CheckPoint validates a single pair and searches for its link
func (v *Validator) CheckPoint(b *model.Board, pair model.Pair) model.Verdict {
	p1, p2 := pair.A, pair.B
	switch {
	case !p1.IsDecoded() || !p2.IsDecoded():
		return model.Rejected{Pair: pair, Reason: model.ReasonNotANumber}
	case p1 == p2:
		return model.Rejected{Pair: pair, Reason: model.ReasonDuplicatePosition}
	case !b.IsInterior(p1) || !b.IsInterior(p2):
		return model.Rejected{Pair: pair, Reason: model.ReasonOutOfRange}
	case b.IsEmpty(p1) || b.IsEmpty(p2):
		return model.Rejected{Pair: pair, Reason: model.ReasonEmptyCell}
	case b.Get(p1) != b.Get(p2):
		return model.Rejected{Pair: pair, Reason: model.ReasonPatternMismatch}
	}

	path, ok := v.finder.Find(b, p1, p2)
	if !ok {
		return model.Rejected{Pair: pair, Reason: model.ReasonNoPath}
	}
	return model.Accepted{Pair: pair, Path: path}
}

// CheckBatch returns one verdict per pair in input order. A pair touching a
// cell named by any earlier pair of the batch is rejected outright, whatever
// that earlier pair's verdict was.
func (v *Validator) CheckBatch(b *model.Board, pairs []model.Pair) []model.Verdict {
	verdicts := make([]model.Verdict, 0, len(pairs))
	seen := make(map[model.Coordinate]bool, len(pairs)*2)
	for _, pair := range pairs {
		if seen[pair.A] || seen[pair.B] {
			verdicts = append(verdicts, model.Rejected{Pair: pair, Reason: model.ReasonDuplicateInBatch})
		} else {
			verdicts = append(verdicts, v.CheckPoint(b, pair))
		}
		for _, c := range []model.Coordinate{pair.A, pair.B} {
			if c.IsDecoded() {
				seen[c] = true
			}
		}
	}
	return verdicts
}
