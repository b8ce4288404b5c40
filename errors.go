package gridpath

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a cell lies outside the grid dimensions.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrBlockedEndpoint is returned when a start or goal cell is (or would become) blocked.
	ErrBlockedEndpoint = errors.New("endpoint is blocked")
	// ErrInvalidDimensions is returned for grids with a non-positive row or column count.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrTooManyObstacles is returned when a scatter scenario cannot place the requested obstacles.
	ErrTooManyObstacles = errors.New("too many obstacles for grid")
	// ErrNoFreeStart is returned when no cell outside the polygon bounding box exists.
	ErrNoFreeStart = errors.New("no start cell outside polygon bounds")
	// ErrInvalidPath is returned by CheckPath when a path leaves the grid or crosses a blocked cell.
	ErrInvalidPath = errors.New("invalid path")
)

// CellError records a failed operation on a specific cell.
type CellError struct {
	Op   string
	Cell Cell
	Err  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Cell, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

func cellError(op string, cell Cell, err error) error {
	return &CellError{Op: op, Cell: cell, Err: err}
}
