package playback

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath"
)

type recordingRenderer struct {
	steps      []int
	noSolution int
	failAt     int
}

func (r *recordingRenderer) Frame(_ *gridpath.Grid, _ gridpath.Path, step int) error {
	if r.failAt > 0 && step == r.failAt {
		return errors.New("render failed")
	}
	r.steps = append(r.steps, step)
	return nil
}

func (r *recordingRenderer) NoSolution(*gridpath.Grid) error {
	r.noSolution++
	return nil
}

func testScenario(t *testing.T) (*gridpath.Grid, gridpath.Path) {
	t.Helper()
	g, err := gridpath.NewGrid(3, 3)
	require.NoError(t, err)
	require.NoError(t, g.SetBlocked(gridpath.Cell{Row: 1, Col: 1}))
	require.NoError(t, g.MarkStart(gridpath.Cell{Row: 0, Col: 0}))
	require.NoError(t, g.MarkGoal(gridpath.Cell{Row: 2, Col: 2}))
	path := gridpath.FindPath(g, gridpath.Cell{Row: 0, Col: 0}, gridpath.Cell{Row: 2, Col: 2})
	require.Len(t, path, 5)
	return g, path
}

func TestPlayer_PlaysEveryStep(t *testing.T) {
	g, path := testScenario(t)
	r := &recordingRenderer{}
	p := Player{Renderer: r, FrameDelay: time.Millisecond}

	require.NoError(t, p.Play(context.Background(), g, path))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, r.steps)
	assert.Zero(t, r.noSolution)
}

func TestPlayer_EmptyPathSkipsFrames(t *testing.T) {
	g, _ := testScenario(t)
	r := &recordingRenderer{}
	p := Player{Renderer: r}

	require.NoError(t, p.Play(context.Background(), g, nil))
	assert.Empty(t, r.steps)
	assert.Equal(t, 1, r.noSolution)
}

func TestPlayer_StopsOnCancel(t *testing.T) {
	g, path := testScenario(t)
	r := &recordingRenderer{}
	p := Player{Renderer: r, FrameDelay: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Play(ctx, g, path)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []int{0}, r.steps)
}

func TestPlayer_RendererError(t *testing.T) {
	g, path := testScenario(t)
	p := Player{Renderer: &recordingRenderer{failAt: 2}}
	assert.EqualError(t, p.Play(context.Background(), g, path), "render failed")
}

func TestTextRenderer(t *testing.T) {
	g, path := testScenario(t)
	var out bytes.Buffer
	r := TextRenderer{Out: &out}

	require.NoError(t, r.Frame(g, path, 2))
	assert.Equal(t, "step 3/5 (2,0)\nS..\no#.\n@.G\n", out.String())

	out.Reset()
	require.NoError(t, r.NoSolution(g))
	assert.Contains(t, out.String(), "S..\n.#.\n..G\n")
	assert.Contains(t, out.String(), "No valid path found!")
}

func TestTerminalRenderer(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	r, err := NewTerminalRenderer(screen)
	require.NoError(t, err)
	defer r.Close()
	screen.SetSize(20, 10)

	g, path := testScenario(t)
	require.NoError(t, r.Frame(g, path, 2))

	runeAt := func(x, y int) rune {
		ch, _, _, _ := screen.GetContent(x, y)
		return ch
	}
	assert.Equal(t, 'S', runeAt(0, 0))
	assert.Equal(t, '•', runeAt(0, 1), "travelled")
	assert.Equal(t, '█', runeAt(2, 1), "blocked")
	assert.Equal(t, '@', runeAt(0, 2), "robot")
	assert.Equal(t, 'G', runeAt(4, 2))
	assert.Equal(t, 's', runeAt(0, 4), "status line")

	require.NoError(t, r.NoSolution(g))
	assert.Equal(t, 'N', runeAt(0, 4))
}

func TestTerminalRenderer_HoldReturnsOnCancel(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	r, err := NewTerminalRenderer(screen)
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Hold(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Hold did not return after cancel")
	}
}
