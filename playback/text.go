package playback

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdrpinto/gridpath"
)

// TextRenderer writes each frame as plain text, one character per cell:
// '#' blocked, 'S' start, 'G' goal, 'o' travelled, '@' robot, '.' free.
type TextRenderer struct {
	Out io.Writer
}

func (r TextRenderer) Frame(grid *gridpath.Grid, path gridpath.Path, step int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "step %d/%d %s\n", step+1, len(path), path[step])
	writeCells(&b, grid, path, step)
	_, err := io.WriteString(r.Out, b.String())
	return err
}

func (r TextRenderer) NoSolution(grid *gridpath.Grid) error {
	var b strings.Builder
	writeCells(&b, grid, nil, -1)
	b.WriteString("No valid path found! Please enter another set of start and end points.\n")
	_, err := io.WriteString(r.Out, b.String())
	return err
}

func writeCells(b *strings.Builder, grid *gridpath.Grid, path gridpath.Path, step int) {
	travelled := make(map[gridpath.Cell]bool, max(step, 0))
	for i := 0; i < step; i++ {
		travelled[path[i]] = true
	}
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			c := gridpath.Cell{Row: row, Col: col}
			b.WriteRune(glyph(grid, c, travelled, step >= 0 && path[step] == c))
		}
		b.WriteByte('\n')
	}
}

func glyph(grid *gridpath.Grid, c gridpath.Cell, travelled map[gridpath.Cell]bool, robot bool) rune {
	if robot {
		return '@'
	}
	state, _ := grid.State(c)
	switch {
	case state == gridpath.Blocked:
		return '#'
	case state == gridpath.Start:
		return 'S'
	case state == gridpath.Goal:
		return 'G'
	case travelled[c]:
		return 'o'
	default:
		return '.'
	}
}
