package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdrpinto/gridpath"
)

// parseCell reads "row,col" and rejects cells outside a rows x cols grid.
func parseCell(text string, rows, cols int) (gridpath.Cell, error) {
	rowText, colText, ok := strings.Cut(text, ",")
	if !ok {
		return gridpath.Cell{}, fmt.Errorf("coordinate %q: want row,col", text)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowText))
	if err != nil {
		return gridpath.Cell{}, fmt.Errorf("coordinate %q: bad row: %w", text, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colText))
	if err != nil {
		return gridpath.Cell{}, fmt.Errorf("coordinate %q: bad column: %w", text, err)
	}
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return gridpath.Cell{}, fmt.Errorf("coordinate %q: outside the %dx%d grid, rows 0-%d and columns 0-%d",
			text, rows, cols, rows-1, cols-1)
	}
	return gridpath.Cell{Row: row, Col: col}, nil
}

func parseVertices(args []string, rows, cols int) ([4]gridpath.Cell, error) {
	var vertices [4]gridpath.Cell
	if len(args) != len(vertices) {
		return vertices, fmt.Errorf("need %d vertices, got %d", len(vertices), len(args))
	}
	for i, arg := range args {
		c, err := parseCell(arg, rows, cols)
		if err != nil {
			return vertices, fmt.Errorf("vertex %d: %w", i+1, err)
		}
		vertices[i] = c
	}
	return vertices, nil
}
