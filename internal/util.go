package internal

// ReconstructPath walks the predecessor chain from goal back to start and
// returns it in start-to-goal order. sizeHint is the expected number of cells
// (path cost + 1 for unit steps); the slice is filled back to front so no
// reversal is needed. A chain that stops short of start yields only the
// suffix that could be followed.
func ReconstructPath[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	goal NodeType,
	start NodeType,
	sizeHint int,
) []NodeType {
	if sizeHint < 1 {
		sizeHint = 1
	}
	path := make([]NodeType, sizeHint)
	i := sizeHint - 1
	path[i] = goal
	current := goal
	for current != start {
		previousNode, exists := cameFrom[current]
		if !exists {
			break
		}
		if i == 0 {
			// hint too small: grow at the front
			path = append(make([]NodeType, len(path)), path...)
			i = len(path) / 2
		}
		i--
		path[i] = previousNode
		current = previousNode
	}
	return path[i:]
}
