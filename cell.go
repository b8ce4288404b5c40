package gridpath

import "fmt"

// Cell is a (row, col) grid position, 0-indexed.
type Cell struct {
	Row int
	Col int
}

// orthogonal offsets in expansion order: up, down, left, right
var directions = [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Add returns the cell offset by d.
func (c Cell) Add(d Cell) Cell { return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col} }

// Adjacent reports whether c and other differ by exactly one orthogonal step.
func (c Cell) Adjacent(other Cell) bool {
	return Manhattan(c, other) == 1
}
