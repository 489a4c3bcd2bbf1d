package model

import "fmt"

// Empty is the identifier of a cell without a tile (border cells and removed tiles)
const Empty = 0

// Board is the grid of tile-pattern identifiers for one round.
// Grid has (Rows+2) x (Cols+2) cells; the outer ring is always Empty.
type Board struct {
	Rows            int
	Cols            int
	MaxPatternTypes int
	Grid            [][]int // Grid[row][col], row and col include the border ring
}

// ValidateDimensions checks the construction constraints for a board.
// available is the number of distinct patterns that can be displayed.
func ValidateDimensions(rows, cols, maxPatternTypes, available int) error {
	if rows < 2 || cols < 2 {
		return fmt.Errorf("%w: %dx%d, each axis must be at least 2", ErrInvalidDimensions, rows, cols)
	}
	if (rows*cols)%2 != 0 {
		return fmt.Errorf("%w: %dx%d", ErrOddCellCount, rows, cols)
	}
	if maxPatternTypes < 1 || maxPatternTypes > available {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrPatternTypesOutOfRange, maxPatternTypes, available)
	}
	return nil
}

// NewEmptyBoard allocates a board with every cell Empty
func NewEmptyBoard(rows, cols, maxPatternTypes int) *Board {
	grid := make([][]int, rows+2)
	for i := range grid {
		grid[i] = make([]int, cols+2)
	}
	return &Board{
		Rows:            rows,
		Cols:            cols,
		MaxPatternTypes: maxPatternTypes,
		Grid:            grid,
	}
}

// BoardFromRows builds a board from interior rows, adding the border ring.
// Every row must have the same length.
func BoardFromRows(rows [][]int, maxPatternTypes int) *Board {
	b := NewEmptyBoard(len(rows), len(rows[0]), maxPatternTypes)
	for r, row := range rows {
		copy(b.Grid[r+1][1:], row)
	}
	return b
}

// InBounds returns true if the coordinate is inside the grid, border included
func (b *Board) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row <= b.Rows+1 && c.Col >= 0 && c.Col <= b.Cols+1
}

// IsInterior returns true if the coordinate addresses a playable cell
func (b *Board) IsInterior(c Coordinate) bool {
	return c.Row >= 1 && c.Row <= b.Rows && c.Col >= 1 && c.Col <= b.Cols
}

// Get returns the identifier at c, or Empty outside the grid
func (b *Board) Get(c Coordinate) int {
	if !b.InBounds(c) {
		return Empty
	}
	return b.Grid[c.Row][c.Col]
}

// Set writes an identifier into an interior cell
func (b *Board) Set(c Coordinate, id int) {
	if b.IsInterior(c) {
		b.Grid[c.Row][c.Col] = id
	}
}

// IsEmpty returns true if the cell holds no tile
func (b *Board) IsEmpty(c Coordinate) bool {
	return b.Get(c) == Empty
}

// Remove clears both cells of a matched pair.
// Callers validate the pair first; Remove itself checks nothing.
func (b *Board) Remove(p1, p2 Coordinate) {
	b.Grid[p1.Row][p1.Col] = Empty
	b.Grid[p2.Row][p2.Col] = Empty
}

// IsClear returns true once every interior cell is empty
func (b *Board) IsClear() bool {
	for row := 1; row <= b.Rows; row++ {
		for col := 1; col <= b.Cols; col++ {
			if b.Grid[row][col] != Empty {
				return false
			}
		}
	}
	return true
}

// Occupied returns the coordinates of all tiles in row-major order
func (b *Board) Occupied() []Coordinate {
	var cells []Coordinate
	for row := 1; row <= b.Rows; row++ {
		for col := 1; col <= b.Cols; col++ {
			if b.Grid[row][col] != Empty {
				cells = append(cells, Coordinate{Row: row, Col: col})
			}
		}
	}
	return cells
}

// TileCount returns the number of occupied interior cells
func (b *Board) TileCount() int {
	return len(b.Occupied())
}

// PatternCounts returns how often each identifier occurs on the board
func (b *Board) PatternCounts() map[int]int {
	counts := make(map[int]int)
	for _, c := range b.Occupied() {
		counts[b.Grid[c.Row][c.Col]]++
	}
	return counts
}

// Interior returns a copy of the playable cells without the border ring
func (b *Board) Interior() [][]int {
	rows := make([][]int, b.Rows)
	for r := range rows {
		rows[r] = make([]int, b.Cols)
		copy(rows[r], b.Grid[r+1][1:b.Cols+1])
	}
	return rows
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	clone := NewEmptyBoard(b.Rows, b.Cols, b.MaxPatternTypes)
	for r := range b.Grid {
		copy(clone.Grid[r], b.Grid[r])
	}
	return clone
}
