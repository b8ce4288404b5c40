// Package playback replays a computed path cell by cell at a fixed pace.
// It only consumes gridpath output; nothing here feeds back into the search.
package playback

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pdrpinto/gridpath"
)

// Renderer draws playback frames.
type Renderer interface {
	// Frame draws the grid with the robot at path[step] and path[:step] already travelled.
	Frame(grid *gridpath.Grid, path gridpath.Path, step int) error
	// NoSolution tells the user that no path exists.
	NoSolution(grid *gridpath.Grid) error
}

// Player paces frames for a Renderer.
type Player struct {
	Renderer   Renderer
	FrameDelay time.Duration
	Logger     *zap.Logger
}

// Play renders every step of path, waiting FrameDelay between frames. An
// empty path is reported through Renderer.NoSolution and no frame is drawn.
// Cancelling ctx stops playback early with ctx.Err().
func (p *Player) Play(ctx context.Context, grid *gridpath.Grid, path gridpath.Path) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if path.Empty() {
		logger.Info("no solution to play back")
		return p.Renderer.NoSolution(grid)
	}

	var tick <-chan time.Time
	if p.FrameDelay > 0 {
		ticker := time.NewTicker(p.FrameDelay)
		defer ticker.Stop()
		tick = ticker.C
	}

	logger.Debug("playback started", zap.Int("frames", len(path)), zap.Duration("frame_delay", p.FrameDelay))
	for step := range path {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Renderer.Frame(grid, path, step); err != nil {
			return err
		}
		if step == len(path)-1 || tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
	logger.Debug("playback finished", zap.Int("frames", len(path)))
	return nil
}
