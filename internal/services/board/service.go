package board

import (
	"log/slog"

	"github.com/mcoot/linkgame/internal/dependencies/random"
	"github.com/mcoot/linkgame/internal/model"
)

// Config holds the pattern catalogue boards draw their labels from
type Config struct {
	Patterns []string
}

// DefaultConfig returns the built-in pattern catalogue
func DefaultConfig() Config {
	return Config{
		Patterns: []string{
			"🍎", "🍊", "🍋", "🍉", "🍇", "🍓", "🍒", "🍑",
			"🍍", "🥝", "🥥", "🍌", "🍐", "🫐", "🥕", "🌽",
			"🍄", "🌶", "🥑", "🍆", "🥦", "🧄", "🧅", "🥜",
		},
	}
}

// Service generates and reshuffles boards
type Service struct {
	cfg    Config
	random random.Random
	logger *slog.Logger
}

// New creates a new BoardService
func New(cfg Config, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		random: random,
		logger: logger,
	}
}

// AvailablePatterns returns the size of the pattern catalogue
func (s *Service) AvailablePatterns() int {
	return len(s.cfg.Patterns)
}

// Generate builds a solvable layout: every identifier occurs an even number
// of times and every interior cell holds a tile.
func (s *Service) Generate(rows, cols, maxPatternTypes int) (*model.Board, error) {
	if err := model.ValidateDimensions(rows, cols, maxPatternTypes, s.AvailablePatterns()); err != nil {
		return nil, err
	}

	// Draw half the cells from successive permutations of 1..maxPatternTypes so
	// each identifier is seeded once before any repeats.
	half := rows * cols / 2
	pool := make([]int, 0, rows*cols)
	var perm []int
	for len(pool) < half {
		if len(perm) == 0 {
			perm = s.permutation(maxPatternTypes)
		}
		pool = append(pool, perm[len(perm)-1])
		perm = perm[:len(perm)-1]
	}

	// Mirroring the half pool pairs every tile up.
	pool = append(pool, pool...)
	random.ShuffleInts(s.random, pool)

	b := model.NewEmptyBoard(rows, cols, maxPatternTypes)
	i := 0
	for row := 1; row <= rows; row++ {
		for col := 1; col <= cols; col++ {
			b.Grid[row][col] = pool[i]
			i++
		}
	}

	s.logger.Debug("board generated",
		slog.Int("rows", rows),
		slog.Int("cols", cols),
		slog.Int("max_pattern_types", maxPatternTypes),
	)
	return b, nil
}

// Shuffle permutes the identifiers among the occupied cells in place.
// Empty cells stay empty and the identifier multiset is unchanged.
func (s *Service) Shuffle(b *model.Board) {
	cells := b.Occupied()
	ids := make([]int, len(cells))
	for i, c := range cells {
		ids[i] = b.Get(c)
	}
	random.ShuffleInts(s.random, ids)
	for i, c := range cells {
		b.Set(c, ids[i])
	}
}

// PickPatterns selects n distinct labels from the catalogue in random order.
// Label i of the result names identifier i+1.
func (s *Service) PickPatterns(n int) ([]string, error) {
	if n < 1 || n > s.AvailablePatterns() {
		return nil, model.ErrPatternTypesOutOfRange
	}
	labels := make([]string, len(s.cfg.Patterns))
	copy(labels, s.cfg.Patterns)
	s.random.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})
	return labels[:n], nil
}

func (s *Service) permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i + 1
	}
	random.ShuffleInts(s.random, perm)
	return perm
}

// Interface for dependency injection
type ServiceInterface interface {
	AvailablePatterns() int
	Generate(rows, cols, maxPatternTypes int) (*model.Board, error)
	Shuffle(b *model.Board)
	PickPatterns(n int) ([]string, error)
}

var _ ServiceInterface = (*Service)(nil)
