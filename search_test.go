package gridpath

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFindPath_StraightLine(t *testing.T) {
	g := mustGrid(t, 5, 5)

	path := FindPath(g, Cell{0, 0}, Cell{0, 4})

	assert.Equal(t, Path{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}, path)
	assert.Equal(t, 4, path.Steps())
}

func TestFindPath_Unreachable(t *testing.T) {
	g := mustGrid(t, 3, 3, Cell{1, 0}, Cell{1, 1}, Cell{1, 2})

	path := FindPath(g, Cell{0, 0}, Cell{2, 0})
	assert.Empty(t, path)

	result, err := Search(g, Cell{0, 0}, Cell{2, 0})
	require.NoError(t, err, "no path is a normal outcome")
	assert.False(t, result.Found)
	assert.True(t, result.Path.Empty())
	assert.Equal(t, 3, result.ExpandedNodes)
}

func TestFindPath_StartIsGoal(t *testing.T) {
	g := mustGrid(t, 4, 4, Cell{0, 1}, Cell{1, 0})

	for _, c := range []Cell{{0, 0}, {3, 3}, {2, 1}} {
		assert.Equal(t, Path{c}, FindPath(g, c, c))
	}
	result, err := Search(g, Cell{3, 3}, Cell{3, 3})
	require.NoError(t, err)
	assert.Zero(t, result.Cost)
	assert.Equal(t, 1, result.ExpandedNodes)
}

func TestSearch_RejectsBadEndpoints(t *testing.T) {
	g := mustGrid(t, 3, 3, Cell{1, 1})

	_, err := Search(g, Cell{1, 1}, Cell{0, 0})
	assert.ErrorIs(t, err, ErrBlockedEndpoint)
	_, err = Search(g, Cell{0, 0}, Cell{1, 1})
	assert.ErrorIs(t, err, ErrBlockedEndpoint)
	_, err = Search(g, Cell{0, 0}, Cell{3, 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.Empty(t, FindPath(g, Cell{-1, 0}, Cell{0, 0}))
}

// Equal-f entries dequeue in insertion order and neighbours are pushed
// up, down, left, right, so the search commits to moving down first.
func TestFindPath_TieBreakIsInsertionOrder(t *testing.T) {
	g := mustGrid(t, 3, 3)

	path := FindPath(g, Cell{0, 0}, Cell{2, 2})

	assert.Equal(t, Path{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}, path)
}

func TestFindPath_Deterministic(t *testing.T) {
	g := randomGrid(rand.New(rand.NewPCG(7, 11)), 12, 12, 0.2)
	start, goal := Cell{0, 0}, Cell{11, 11}
	require.NoError(t, g.SetFree(start))
	require.NoError(t, g.SetFree(goal))

	first := FindPath(g, start, goal)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FindPath(g, start, goal))
	}
}

func TestFindPath_DetourAroundWall(t *testing.T) {
	// . . . . .
	// # # # # .
	// . . . . .
	g := mustGrid(t, 3, 5, Cell{1, 0}, Cell{1, 1}, Cell{1, 2}, Cell{1, 3})

	result, err := Search(g, Cell{0, 0}, Cell{2, 0})

	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, 10, result.Cost)
	assert.Equal(t, Cell{1, 4}, result.Path[5])
	assert.True(t, Validate(result.Path, g))
	assert.True(t, result.Path.IsContiguous())
}

// (3,2) is queued from (4,2) before (2,2) reaches it more cheaply. The
// cheaper route rewires its predecessor but the entry keeps its place in
// the queue, so (2,3) is expanded first and the path runs through it.
func TestFindPath_QueuedCellKeepsPriority(t *testing.T) {
	// # . . # . . .
	// . . # . # . .
	// . . . . # . .
	// . # . . . . .
	// . # . # . . .
	// . . . # . . #
	g := mustGrid(t, 6, 7,
		Cell{0, 0}, Cell{0, 3}, Cell{1, 2}, Cell{1, 4}, Cell{2, 4},
		Cell{3, 1}, Cell{4, 1}, Cell{4, 3}, Cell{5, 3}, Cell{5, 6})

	path := FindPath(g, Cell{3, 0}, Cell{5, 5})

	assert.Equal(t, Path{
		{3, 0}, {2, 0}, {2, 1}, {2, 2}, {2, 3}, {3, 3}, {3, 4}, {4, 4}, {5, 4}, {5, 5},
	}, path)
}

func TestSearch_MatchesBFSOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 200; trial++ {
		rows, cols := 2+rng.IntN(8), 2+rng.IntN(8)
		g := randomGrid(rng, rows, cols, 0.3)
		start := Cell{rng.IntN(rows), rng.IntN(cols)}
		goal := Cell{rng.IntN(rows), rng.IntN(cols)}
		require.NoError(t, g.SetFree(start))
		require.NoError(t, g.SetFree(goal))

		want := bfsDistance(g, start, goal)
		result, err := Search(g, start, goal)
		require.NoError(t, err)

		if want < 0 {
			assert.False(t, result.Found, "trial %d: found path on unreachable grid\n%s", trial, g)
			assert.Empty(t, result.Path)
			continue
		}
		require.True(t, result.Found, "trial %d: missed reachable goal\n%s", trial, g)
		assert.Equal(t, want, result.Cost, "trial %d\n%s", trial, g)
		assert.Len(t, result.Path, want+1)
		assert.Equal(t, start, result.Path[0])
		assert.Equal(t, goal, result.Path[len(result.Path)-1])
		assert.True(t, result.Path.IsContiguous(), "trial %d: %v", trial, result.Path)
		assert.True(t, Validate(result.Path, g), "trial %d: %v", trial, result.Path)
	}
}

func TestSearch_WithHeuristic(t *testing.T) {
	g := randomGrid(rand.New(rand.NewPCG(3, 4)), 10, 10, 0.25)
	start, goal := Cell{0, 0}, Cell{9, 9}
	require.NoError(t, g.SetFree(start))
	require.NoError(t, g.SetFree(goal))

	astar, err := Search(g, start, goal)
	require.NoError(t, err)
	dijkstra, err := Search(g, start, goal, WithHeuristic(func(Cell, Cell) int { return 0 }))
	require.NoError(t, err)

	assert.Equal(t, astar.Found, dijkstra.Found)
	assert.Equal(t, astar.Cost, dijkstra.Cost)
	assert.GreaterOrEqual(t, dijkstra.ExpandedNodes, astar.ExpandedNodes)
}

func TestSearch_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := mustGrid(t, 2, 2)

	_, err := Search(g, Cell{0, 0}, Cell{1, 1}, WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("search finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, true, fields["found"])
	assert.EqualValues(t, 2, fields["cost"])
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 0, Manhattan(Cell{2, 3}, Cell{2, 3}))
	assert.Equal(t, 7, Manhattan(Cell{0, 0}, Cell{3, 4}))
	assert.Equal(t, 7, Manhattan(Cell{3, 4}, Cell{0, 0}))
	assert.Equal(t, 5, Manhattan(Cell{-1, 2}, Cell{1, -1}))
}

func randomGrid(rng *rand.Rand, rows, cols int, density float64) *Grid {
	g, _ := NewGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				_ = g.SetBlocked(Cell{r, c})
			}
		}
	}
	return g
}

// bfsDistance returns the number of steps on a shortest path, or -1.
func bfsDistance(g *Grid, start, goal Cell) int {
	dist := map[Cell]int{start: 0}
	queue := []Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return dist[cur]
		}
		for _, n := range g.Neighbors(cur) {
			if _, seen := dist[n]; seen || !g.IsTraversable(n) {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return -1
}
