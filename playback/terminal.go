package playback

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pdrpinto/gridpath"
)

// cellWidth is the number of terminal columns per grid cell, which keeps
// cells roughly square in most fonts.
const cellWidth = 2

var (
	styleFree      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBlocked   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStart     = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleGoal      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTravelled = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleRobot     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// TerminalRenderer draws frames on a tcell screen.
type TerminalRenderer struct {
	screen tcell.Screen
}

// NewTerminalRenderer takes ownership of screen and initializes it. A nil
// screen opens the controlling terminal.
func NewTerminalRenderer(screen tcell.Screen) (*TerminalRenderer, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.HideCursor()
	return &TerminalRenderer{screen: screen}, nil
}

func (r *TerminalRenderer) Frame(grid *gridpath.Grid, path gridpath.Path, step int) error {
	r.screen.Clear()
	travelled := make(map[gridpath.Cell]bool, step)
	for i := 0; i < step; i++ {
		travelled[path[i]] = true
	}
	r.drawGrid(grid, travelled, path[step])
	r.drawStatus(grid, fmt.Sprintf("step %d/%d %s", step+1, len(path), path[step]))
	r.screen.Show()
	return nil
}

func (r *TerminalRenderer) NoSolution(grid *gridpath.Grid) error {
	r.screen.Clear()
	r.drawGrid(grid, nil, gridpath.Cell{Row: -1, Col: -1})
	r.drawStatus(grid, "No valid path found! Press q to quit.")
	r.screen.Show()
	return nil
}

// Hold keeps the last frame on screen until the user presses q, Escape or
// Ctrl-C, or ctx is cancelled.
func (r *TerminalRenderer) Hold(ctx context.Context) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = r.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-stop:
		}
	}()

	for {
		switch ev := r.screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return
		case *tcell.EventResize:
			r.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return
			}
		}
	}
}

// Close restores the terminal.
func (r *TerminalRenderer) Close() {
	r.screen.Fini()
}

func (r *TerminalRenderer) drawGrid(grid *gridpath.Grid, travelled map[gridpath.Cell]bool, robot gridpath.Cell) {
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			c := gridpath.Cell{Row: row, Col: col}
			ch, style := '·', styleFree
			state, _ := grid.State(c)
			switch {
			case c == robot:
				ch, style = '@', styleRobot
			case state == gridpath.Blocked:
				ch, style = '█', styleBlocked
			case state == gridpath.Start:
				ch, style = 'S', styleStart
			case state == gridpath.Goal:
				ch, style = 'G', styleGoal
			case travelled[c]:
				ch, style = '•', styleTravelled
			}
			x := col * cellWidth
			r.screen.SetContent(x, row, ch, nil, style)
			if ch == '█' || ch == '@' {
				r.screen.SetContent(x+1, row, ch, nil, style)
			}
		}
	}
}

func (r *TerminalRenderer) drawStatus(grid *gridpath.Grid, text string) {
	y := grid.Rows() + 1
	for i, ch := range []rune(text) {
		r.screen.SetContent(i, y, ch, nil, styleStatus)
	}
}
