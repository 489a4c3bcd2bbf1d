package model

import (
	"math"
	"strconv"
	"strings"
)

// Coordinate identifies a cell on the board.
// Rows and columns are 1-indexed within the playable interior; index 0 and
// index Rows+1 (or Cols+1) address the empty border ring.
type Coordinate struct {
	Row int
	Col int
}

// NoCoordinate stands in for a selection that could not be decoded
var NoCoordinate = Coordinate{Row: math.MinInt, Col: math.MinInt}

// IsDecoded returns false for NoCoordinate
func (c Coordinate) IsDecoded() bool {
	return c != NoCoordinate
}

// Order returns the row-major zero-based linear index of the cell
func (c Coordinate) Order(cols int) int {
	return (c.Row-1)*cols + (c.Col - 1)
}

// String renders the coordinate as "(row,col)"
func (c Coordinate) String() string {
	if !c.IsDecoded() {
		return "(?,?)"
	}
	return "(" + strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col) + ")"
}

// CoordinateFromOrder converts a row-major zero-based order into a Coordinate
func CoordinateFromOrder(order, cols int) Coordinate {
	return Coordinate{
		Row: floorDiv(order, cols) + 1,
		Col: floorMod(order, cols) + 1,
	}
}

// Pair is one submitted selection of two cells
type Pair struct {
	A Coordinate
	B Coordinate
}

// Has reports whether c is one of the pair's endpoints
func (p Pair) Has(c Coordinate) bool {
	return p.A == c || p.B == c
}

// DecodedOrders is the result of turning raw order tokens into pairs
type DecodedOrders struct {
	Pairs []Pair
	// Dangling is true when an odd token count left a trailing token unused
	Dangling bool
}

// DecodeOrderTokens splits a flat token list into coordinate pairs.
// Tokens that are not integers decode to NoCoordinate so the validator can
// reject the affected pair; fractional numbers are floored.
func DecodeOrderTokens(tokens []string, cols int) DecodedOrders {
	var out DecodedOrders
	if len(tokens)%2 != 0 {
		out.Dangling = true
		tokens = tokens[:len(tokens)-1]
	}
	out.Pairs = make([]Pair, 0, len(tokens)/2)
	for i := 0; i+1 < len(tokens); i += 2 {
		out.Pairs = append(out.Pairs, Pair{
			A: decodeToken(tokens[i], cols),
			B: decodeToken(tokens[i+1], cols),
		})
	}
	return out
}

func decodeToken(token string, cols int) Coordinate {
	token = strings.TrimSpace(token)
	if n, err := strconv.Atoi(token); err == nil {
		return CoordinateFromOrder(n, cols)
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return NoCoordinate
	}
	return CoordinateFromOrder(int(math.Floor(f)), cols)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
