package hint

import (
	"log/slog"

	"github.com/mcoot/linkgame/internal/model"
	"github.com/mcoot/linkgame/internal/services/move"
)

// Service finds pairs that can currently be linked
type Service struct {
	finder   move.PathFinder
	strategy Strategy
	logger   *slog.Logger
}

// New creates a new hint Service. A nil strategy suggests the fewest-bend pair.
func New(finder move.PathFinder, strategy Strategy, logger *slog.Logger) *Service {
	if strategy == nil {
		strategy = FewestBendsStrategy{}
	}
	return &Service{
		finder:   finder,
		strategy: strategy,
		logger:   logger.With(slog.String("component", "hint-service")),
	}
}

// LinkablePairs lists every pair of matching tiles that has a path right now,
// in row-major order of the first tile and then the second.
func (s *Service) LinkablePairs(b *model.Board) []model.Accepted {
	byPattern := make(map[int][]model.Coordinate)
	occupied := b.Occupied()
	for _, c := range occupied {
		id := b.Get(c)
		byPattern[id] = append(byPattern[id], c)
	}

	var linkable []model.Accepted
	for _, a := range occupied {
		for _, c := range byPattern[b.Get(a)] {
			if c.Order(b.Cols) <= a.Order(b.Cols) {
				continue
			}
			if path, ok := s.finder.Find(b, a, c); ok {
				linkable = append(linkable, model.Accepted{Pair: model.Pair{A: a, B: c}, Path: path})
			}
		}
	}
	return linkable
}

// Suggest picks one linkable pair using the configured strategy and reports
// how many were available. It returns false when no pair can be linked.
func (s *Service) Suggest(b *model.Board) (model.Accepted, int, bool) {
	linkable := s.LinkablePairs(b)
	if len(linkable) == 0 {
		if !b.IsClear() {
			s.logger.Debug("no linkable pairs", slog.Int("tiles_remaining", b.TileCount()))
		}
		return model.Accepted{}, 0, false
	}
	return s.strategy.Choose(linkable), len(linkable), true
}
