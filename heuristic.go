package gridpath

// Heuristic returns the estimated cost from cell a to cell b.
// It must never overestimate the true cost and must satisfy the triangle
// inequality, otherwise the returned paths are no longer shortest.
type Heuristic func(from Cell, to Cell) int

// Manhattan is |a.Row-b.Row| + |a.Col-b.Col|.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
