package model

// Path is the cell sequence connecting two tiles, endpoints included.
// Consecutive cells are orthogonal neighbours.
type Path []Coordinate

// Bends returns the number of direction changes along the path
func (p Path) Bends() int {
	bends := 0
	for i := 2; i < len(p); i++ {
		if direction(p[i-2], p[i-1]) != direction(p[i-1], p[i]) {
			bends++
		}
	}
	return bends
}

// Corners returns the start, every turning cell and the end.
// Renderers draw the connecting polyline from these points.
func (p Path) Corners() []Coordinate {
	if len(p) <= 2 {
		out := make([]Coordinate, len(p))
		copy(out, p)
		return out
	}
	corners := []Coordinate{p[0]}
	for i := 2; i < len(p); i++ {
		if direction(p[i-2], p[i-1]) != direction(p[i-1], p[i]) {
			corners = append(corners, p[i-1])
		}
	}
	return append(corners, p[len(p)-1])
}

// Start returns the first cell of the path
func (p Path) Start() Coordinate {
	return p[0]
}

// End returns the last cell of the path
func (p Path) End() Coordinate {
	return p[len(p)-1]
}

// Direction is one of the four axial step directions
type Direction struct {
	DRow int
	DCol int
}

// Axial directions in scan order
var (
	Down  = Direction{DRow: 1}
	Up    = Direction{DRow: -1}
	Right = Direction{DCol: 1}
	Left  = Direction{DCol: -1}

	Directions = [4]Direction{Down, Up, Right, Left}
)

// Step returns the neighbouring coordinate in direction d
func (c Coordinate) Step(d Direction) Coordinate {
	return Coordinate{Row: c.Row + d.DRow, Col: c.Col + d.DCol}
}

func direction(from, to Coordinate) Direction {
	return Direction{DRow: sign(to.Row - from.Row), DCol: sign(to.Col - from.Col)}
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
