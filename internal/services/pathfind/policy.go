package pathfind

import "github.com/mcoot/linkgame/internal/model"

// BendPolicy decides how many bends a link may use
type BendPolicy struct {
	// MaxBends applies to every pair
	MaxBends int
	// SideFree allows 3 bends when one endpoint is on an extreme row and the
	// other on an extreme column
	SideFree bool
	// MoreSideFree additionally allows 4 bends between opposite extreme rows
	// or opposite extreme columns; it implies SideFree
	MoreSideFree bool
}

// DefaultBendPolicy is the classic three-segment rule with corner relief
func DefaultBendPolicy() BendPolicy {
	return BendPolicy{
		MaxBends:     2,
		SideFree:     true,
		MoreSideFree: false,
	}
}

// Limit returns the effective bend limit for linking p1 and p2 on a board of
// the given size. The result never drops below MaxBends.
func (p BendPolicy) Limit(rows, cols int, p1, p2 model.Coordinate) int {
	limit := p.MaxBends
	if p.MoreSideFree && oppositeEdges(rows, cols, p1, p2) {
		limit = max(limit, 4)
	}
	if (p.SideFree || p.MoreSideFree) && (adjacentEdges(rows, cols, p1, p2) || adjacentEdges(rows, cols, p2, p1)) {
		limit = max(limit, 3)
	}
	return limit
}

// oppositeEdges is true for row 1 against row rows, or column 1 against column cols
func oppositeEdges(rows, cols int, p1, p2 model.Coordinate) bool {
	return (p1.Row == 1 && p2.Row == rows) ||
		(p1.Row == rows && p2.Row == 1) ||
		(p1.Col == 1 && p2.Col == cols) ||
		(p1.Col == cols && p2.Col == 1)
}

// adjacentEdges is true when a sits on an extreme row and b on an extreme column
func adjacentEdges(rows, cols int, a, b model.Coordinate) bool {
	onEdgeRow := a.Row == 1 || a.Row == rows
	onEdgeCol := b.Col == 1 || b.Col == cols
	return onEdgeRow && onEdgeCol
}

// Finder applies a BendPolicy to FindPath
type Finder struct {
	policy BendPolicy
}

// NewFinder creates a Finder using the given policy
func NewFinder(policy BendPolicy) *Finder {
	return &Finder{policy: policy}
}

// Policy returns the active bend policy
func (f *Finder) Policy() BendPolicy {
	return f.policy
}

// Find searches for a link between p1 and p2 under the policy's limit
func (f *Finder) Find(b *model.Board, p1, p2 model.Coordinate) (model.Path, bool) {
	return FindPath(b, p1, p2, f.policy.Limit(b.Rows, b.Cols, p1, p2))
}
