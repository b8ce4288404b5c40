package gridpath

import "fmt"

// Path is an ordered start-to-goal cell sequence. An empty Path means no path was found.
type Path []Cell

// Empty reports whether the path holds no cells.
func (p Path) Empty() bool { return len(p) == 0 }

// Steps is the number of moves along the path, len-1 for a non-empty path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// IsContiguous reports whether every consecutive pair is one orthogonal step apart.
func (p Path) IsContiguous() bool {
	for i := 1; i < len(p); i++ {
		if !p[i-1].Adjacent(p[i]) {
			return false
		}
	}
	return true
}

// Validate reports whether every cell of path is in bounds and traversable
// in grid as it is now. The grid must be the one the path was searched on,
// unmodified since the search.
func Validate(path Path, grid *Grid) bool {
	return CheckPath(path, grid) == nil
}

// CheckPath is Validate reporting the first offending cell. The error wraps
// ErrInvalidPath, plus ErrOutOfBounds when the cell is off-grid.
func CheckPath(path Path, grid *Grid) error {
	for _, c := range path {
		if !grid.InBounds(c) {
			return cellError("validate", c, fmt.Errorf("%w: %w", ErrInvalidPath, ErrOutOfBounds))
		}
		if !grid.IsTraversable(c) {
			return cellError("validate", c, fmt.Errorf("%w: cell is blocked", ErrInvalidPath))
		}
	}
	return nil
}
