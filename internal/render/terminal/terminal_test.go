package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/driftfield/internal/render"
)

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestInputHoldsKeyForHoldTicks(t *testing.T) {
	in := NewInput(3)
	require.True(t, in.HandleEvent(key('d')))

	assert.True(t, in.IsKeyJustPressed(render.KeyD))
	assert.Equal(t, 1.0, in.Axis(render.AxisMoveX))

	in.EndTick()
	assert.False(t, in.IsKeyJustPressed(render.KeyD))
	assert.True(t, in.IsKeyPressed(render.KeyD))

	in.EndTick()
	assert.True(t, in.IsKeyPressed(render.KeyD))
	in.EndTick()
	assert.False(t, in.IsKeyPressed(render.KeyD))
	assert.Equal(t, 0.0, in.Axis(render.AxisMoveX))
}

func TestInputRepeatRefreshesHold(t *testing.T) {
	in := NewInput(2)
	in.HandleEvent(key('w'))
	in.EndTick()
	in.HandleEvent(key('w'))

	assert.False(t, in.IsKeyJustPressed(render.KeyW), "auto-repeat is not a new press")
	in.EndTick()
	assert.True(t, in.IsKeyPressed(render.KeyW))
	assert.Equal(t, 1.0, in.Axis(render.AxisMoveY))
}

func TestInputArrowsAim(t *testing.T) {
	in := NewInput(0)
	in.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	in.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))

	assert.Equal(t, -1.0, in.Axis(render.AxisAimX))
	assert.Equal(t, -1.0, in.Axis(render.AxisAimY))
	assert.Equal(t, 0.0, in.Axis(render.AxisMoveX))
}

func TestInputQuit(t *testing.T) {
	for name, ev := range map[string]*tcell.EventKey{
		"escape": tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		"ctrl-c": tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		"q":      key('q'),
	} {
		t.Run(name, func(t *testing.T) {
			in := NewInput(0)
			assert.False(t, in.HandleEvent(ev))
			assert.True(t, in.Quit())
		})
	}
}

func TestInputIgnoresOtherEvents(t *testing.T) {
	in := NewInput(0)
	assert.True(t, in.HandleEvent(tcell.NewEventResize(80, 24)))
	assert.True(t, in.HandleEvent(key('z')))
	assert.False(t, in.IsKeyPressed(render.KeySpace))
}

func TestSurfacePlotsAroundCenter(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(20, 11)

	s := NewSurface(screen)
	w, h := s.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 10, h)

	s.Plot(0, 0, '@', tcell.StyleDefault)
	s.Plot(2, 1, '*', tcell.StyleDefault)
	s.Plot(100, 0, 'x', tcell.StyleDefault)

	mainc, _, _, _ := screen.GetContent(10, 5)
	assert.Equal(t, '@', mainc)
	mainc, _, _, _ = screen.GetContent(12, 4)
	assert.Equal(t, '*', mainc)

	s.Status("frame 1", tcell.StyleDefault)
	mainc, _, _, _ = screen.GetContent(0, 10)
	assert.Equal(t, 'f', mainc)
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 1, roundHalfUp(0.5))
	assert.Equal(t, -1, roundHalfUp(-0.5))
	assert.Equal(t, 0, roundHalfUp(0.49))
	assert.Equal(t, -2, roundHalfUp(-1.7))
}
