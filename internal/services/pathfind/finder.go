// Package pathfind decides whether two tiles can be linked by an orthogonal
// path through empty cells that bends at most a bounded number of times.
//
// The search is breadth-first over "corner" nodes. Expanding a node casts a
// ray in each of the four directions: every empty, unvisited cell on the ray
// becomes a node one level deeper, visited cells are passed over, and the
// first occupied cell stops the ray. Reaching the target on a ray ends the
// search. A node's level is the number of straight segments used to reach
// it, so a path found while expanding a level-k node bends exactly k times;
// nodes deeper than the bend limit are never expanded.
package pathfind

import (
	"github.com/mcoot/linkgame/internal/model"
)

// node is one search vertex; parent indexes into the arena, -1 for the root
type node struct {
	at     model.Coordinate
	level  int
	parent int
}

// FindPath searches for a path from start to target bending at most
// maxBends times. The border ring is traversable. Both endpoints are
// expected to be occupied interior cells.
func FindPath(b *model.Board, start, target model.Coordinate, maxBends int) (model.Path, bool) {
	if maxBends < 0 || !b.InBounds(start) || !b.InBounds(target) {
		return nil, false
	}

	visited := make([][]bool, len(b.Grid))
	for r := range visited {
		visited[r] = make([]bool, len(b.Grid[r]))
	}
	visited[start.Row][start.Col] = true

	arena := []node{{at: start, level: 0, parent: -1}}
	for head := 0; head < len(arena); head++ {
		current := arena[head]
		// FIFO order means levels never decrease, so nothing after this can qualify
		if current.level > maxBends {
			break
		}

		for _, dir := range model.Directions {
			for c := current.at.Step(dir); b.InBounds(c); c = c.Step(dir) {
				if c == target {
					return reconstruct(arena, head, target), true
				}
				if !b.IsEmpty(c) {
					break
				}
				if visited[c.Row][c.Col] {
					continue
				}
				visited[c.Row][c.Col] = true
				arena = append(arena, node{at: c, level: current.level + 1, parent: head})
			}
		}
	}
	return nil, false
}

// reconstruct walks back-pointers from the node whose ray hit the target and
// expands the corner sequence into individual cells.
func reconstruct(arena []node, from int, target model.Coordinate) model.Path {
	var corners []model.Coordinate
	for i := from; i >= 0; i = arena[i].parent {
		corners = append(corners, arena[i].at)
	}
	for i, j := 0, len(corners)-1; i < j; i, j = i+1, j-1 {
		corners[i], corners[j] = corners[j], corners[i]
	}
	corners = append(corners, target)

	path := model.Path{corners[0]}
	for i := 1; i < len(corners); i++ {
		path = appendSegment(path, corners[i])
	}
	return path
}

// appendSegment extends path in a straight line up to and including to
func appendSegment(path model.Path, to model.Coordinate) model.Path {
	cur := path[len(path)-1]
	step := model.Direction{DRow: sign(to.Row - cur.Row), DCol: sign(to.Col - cur.Col)}
	for cur != to {
		cur = cur.Step(step)
		path = append(path, cur)
	}
	return path
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
