package gridpath

import (
	"fmt"
	"math/rand/v2"
)

// Grid sizes used by the two scenario kinds.
const (
	ScatterRows = 10
	ScatterCols = 10
	PolygonRows = 40
	PolygonCols = 40

	DefaultObstacleCount = 30
)

// Scenario is a populated grid with its chosen endpoints. Start and Goal are
// marked on the grid and are guaranteed not to be Blocked.
type Scenario struct {
	Grid  *Grid
	Start Cell
	Goal  Cell
}

// ScatterOption configures NewScatterScenario.
type ScatterOption func(*scatterOptions)

type scatterOptions struct {
	obstacleCount int
}

// WithObstacleCount sets how many distinct cells get blocked.
func WithObstacleCount(count int) ScatterOption {
	return func(o *scatterOptions) { o.obstacleCount = count }
}

// NewScatterScenario blocks uniformly random cells, never start or goal,
// until exactly the configured number of distinct obstacles is placed.
func NewScatterScenario(rows, cols int, start, goal Cell, rng *rand.Rand, options ...ScatterOption) (*Scenario, error) {
	opts := scatterOptions{obstacleCount: DefaultObstacleCount}
	for _, o := range options {
		o(&opts)
	}
	if opts.obstacleCount < 0 {
		return nil, fmt.Errorf("obstacle count %d is negative", opts.obstacleCount)
	}
	rng = ensureRand(rng)

	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := grid.MarkStart(start); err != nil {
		return nil, err
	}
	if err := grid.MarkGoal(goal); err != nil {
		return nil, err
	}

	capacity := rows * cols
	if start == goal {
		capacity--
	} else {
		capacity -= 2
	}
	if opts.obstacleCount > capacity {
		return nil, fmt.Errorf("%w: %d requested, %d cells available", ErrTooManyObstacles, opts.obstacleCount, capacity)
	}

	for placed := 0; placed < opts.obstacleCount; {
		c := Cell{Row: rng.IntN(rows), Col: rng.IntN(cols)}
		if c == start || c == goal {
			continue
		}
		if state, _ := grid.State(c); state == Blocked {
			continue
		}
		if err := grid.SetBlocked(c); err != nil {
			return nil, err
		}
		placed++
	}
	return &Scenario{Grid: grid, Start: start, Goal: goal}, nil
}

// NewPolygonScenario blocks the four vertex cells, picks a random start
// outside the vertices' bounding box and targets the box's integer midpoint.
//
// Containment is the inclusive axis-aligned bounding box of the vertices, not
// the polygon itself, so a start in a concave notch is still rejected.
func NewPolygonScenario(rows, cols int, vertices [4]Cell, rng *rand.Rand) (*Scenario, error) {
	rng = ensureRand(rng)

	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	for _, v := range vertices {
		if err := grid.SetBlocked(v); err != nil {
			return nil, err
		}
	}

	box := boundsOf(vertices[:])
	if box.minRow == 0 && box.minCol == 0 && box.maxRow == rows-1 && box.maxCol == cols-1 {
		return nil, ErrNoFreeStart
	}

	var start Cell
	for {
		start = Cell{Row: rng.IntN(rows), Col: rng.IntN(cols)}
		if !box.contains(start) {
			break
		}
	}
	goal := box.center()

	if err := grid.MarkStart(start); err != nil {
		return nil, err
	}
	if err := grid.MarkGoal(goal); err != nil {
		return nil, err
	}
	return &Scenario{Grid: grid, Start: start, Goal: goal}, nil
}

// Solve searches the scenario's grid between its endpoints.
func (s *Scenario) Solve(options ...Option) (Result, error) {
	return Search(s.Grid, s.Start, s.Goal, options...)
}

type bounds struct {
	minRow, maxRow int
	minCol, maxCol int
}

func boundsOf(cells []Cell) bounds {
	b := bounds{minRow: cells[0].Row, maxRow: cells[0].Row, minCol: cells[0].Col, maxCol: cells[0].Col}
	for _, c := range cells[1:] {
		b.minRow = min(b.minRow, c.Row)
		b.maxRow = max(b.maxRow, c.Row)
		b.minCol = min(b.minCol, c.Col)
		b.maxCol = max(b.maxCol, c.Col)
	}
	return b
}

func (b bounds) contains(c Cell) bool {
	return c.Row >= b.minRow && c.Row <= b.maxRow && c.Col >= b.minCol && c.Col <= b.maxCol
}

func (b bounds) center() Cell {
	return Cell{Row: (b.minRow + b.maxRow) / 2, Col: (b.minCol + b.maxCol) / 2}
}

// NewSeededRand returns a generator whose sequence is fixed by seed. A zero
// seed draws one from the runtime.
func NewSeededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
