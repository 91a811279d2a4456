package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chosenoffset.com/driftfield/internal/config"
	"chosenoffset.com/driftfield/internal/render/terminal"
)

func newTestViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 21)

	v, err := newViewer(screen, config.Default(), 6, zap.NewNop())
	require.NoError(t, err)
	return v, screen
}

func TestViewerGridCoversTerminal(t *testing.T) {
	v, _ := newTestViewer(t)
	info := v.world.Info()
	assert.Equal(t, 42, info.Columns)
	assert.Equal(t, 22, info.Rows)
	assert.Equal(t, 1.0, info.TileSize.X)
}

func TestViewerMovesAndDraws(t *testing.T) {
	v, screen := newTestViewer(t)

	v.input.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone))
	for i := 0; i < 5; i++ {
		v.update()
	}
	v.draw()

	assert.InDelta(t, -0.5, v.world.Scroll().X, 1e-9)

	mainc, _, _, _ := screen.GetContent(20, 10)
	assert.Equal(t, '@', mainc)
	mainc, _, _, _ = screen.GetContent(0, 20)
	assert.Equal(t, 'g', mainc, "status line starts with the grid size")
}

func TestViewerPauseAndFire(t *testing.T) {
	v, _ := newTestViewer(t)

	v.input.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	v.update()
	require.True(t, v.paused)
	// Let the first press lapse so the next one is not read as auto-repeat.
	for i := 0; i < terminal.DefaultHoldTicks; i++ {
		v.update()
	}
	assert.Equal(t, uint64(0), v.world.FrameNumber())

	v.input.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	v.input.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	v.update()
	assert.False(t, v.paused)
	assert.Equal(t, 1, v.launcher.Fired())
}
