package gridpath

import (
	"fmt"
	"strings"
)

// CellState classifies a single grid cell.
type CellState uint8

const (
	Free CellState = iota
	Blocked
	// Start and Goal mark endpoints; both are traversable.
	Start
	Goal
)

func (s CellState) String() string {
	switch s {
	case Free:
		return "free"
	case Blocked:
		return "blocked"
	case Start:
		return "start"
	case Goal:
		return "goal"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Grid is a fixed-size rectangular store of cell states.
// A Grid is owned by one caller at a time and is not safe for concurrent mutation.
type Grid struct {
	rows  int
	cols  int
	cells []CellState
}

// NewGrid creates a rows x cols grid with every cell Free.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: make([]CellState, rows*cols)}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies inside [0,rows) x [0,cols).
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) index(c Cell) int { return c.Row*g.cols + c.Col }

// State returns the state of c.
func (g *Grid) State(c Cell) (CellState, error) {
	if !g.InBounds(c) {
		return Free, cellError("state", c, ErrOutOfBounds)
	}
	return g.cells[g.index(c)], nil
}

// SetBlocked marks c as an obstacle. Endpoint cells cannot be blocked.
func (g *Grid) SetBlocked(c Cell) error {
	if !g.InBounds(c) {
		return cellError("block", c, ErrOutOfBounds)
	}
	i := g.index(c)
	if g.cells[i] == Start || g.cells[i] == Goal {
		return cellError("block", c, ErrBlockedEndpoint)
	}
	g.cells[i] = Blocked
	return nil
}

// SetFree clears any state on c, including endpoint markers.
func (g *Grid) SetFree(c Cell) error {
	if !g.InBounds(c) {
		return cellError("free", c, ErrOutOfBounds)
	}
	g.cells[g.index(c)] = Free
	return nil
}

// MarkStart labels c as the start cell.
func (g *Grid) MarkStart(c Cell) error { return g.markEndpoint("mark start", c, Start) }

// MarkGoal labels c as the goal cell.
func (g *Grid) MarkGoal(c Cell) error { return g.markEndpoint("mark goal", c, Goal) }

func (g *Grid) markEndpoint(op string, c Cell, state CellState) error {
	if !g.InBounds(c) {
		return cellError(op, c, ErrOutOfBounds)
	}
	i := g.index(c)
	if g.cells[i] == Blocked {
		return cellError(op, c, ErrBlockedEndpoint)
	}
	g.cells[i] = state
	return nil
}

// IsTraversable is true iff c is in bounds and not Blocked.
func (g *Grid) IsTraversable(c Cell) bool {
	return g.InBounds(c) && g.cells[g.index(c)] != Blocked
}

// Neighbors returns the in-bounds orthogonal neighbours of c in the order
// up, down, left, right. Blocked neighbours are included.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(directions))
	for _, d := range directions {
		if n := c.Add(d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// BlockedCount returns the number of Blocked cells.
func (g *Grid) BlockedCount() int {
	n := 0
	for _, s := range g.cells {
		if s == Blocked {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			switch g.cells[r*g.cols+c] {
			case Blocked:
				b.WriteByte('#')
			case Start:
				b.WriteByte('S')
			case Goal:
				b.WriteByte('G')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
