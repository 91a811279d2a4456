// Package terminal adapts a tcell screen to the game's input model.
//
// Terminals report key presses but never releases, and key repeat arrives at
// the terminal's own rate. Input turns each press into a short hold so that
// render.InputManager's "is the key down" questions have useful answers.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/driftfield/internal/render"
)

// DefaultHoldTicks covers the usual gap between auto-repeat events.
const DefaultHoldTicks = 8

// Input implements render.InputManager from tcell key events.
type Input struct {
	hold    int
	held    map[render.Key]int
	pressed map[render.Key]bool
	quit    bool
}

func NewInput(holdTicks int) *Input {
	if holdTicks < 1 {
		holdTicks = DefaultHoldTicks
	}
	return &Input{
		hold:    holdTicks,
		held:    make(map[render.Key]int),
		pressed: make(map[render.Key]bool),
	}
}

// HandleEvent records a key press. It returns false once the user asked to
// quit with Escape, Ctrl+C or q.
func (in *Input) HandleEvent(ev tcell.Event) bool {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return !in.quit
	}
	if kev.Key() == tcell.KeyCtrlC || (kev.Key() == tcell.KeyRune && kev.Rune() == 'q') {
		in.quit = true
		return false
	}

	key, ok := translate(kev)
	if !ok {
		return !in.quit
	}
	if key == render.KeyEscape {
		in.quit = true
	}
	if in.held[key] == 0 {
		in.pressed[key] = true
	}
	in.held[key] = in.hold
	return !in.quit
}

// EndTick ages held keys and clears the just-pressed set. Call it once after
// each simulation tick.
func (in *Input) EndTick() {
	clear(in.pressed)
	for k, n := range in.held {
		if n <= 1 {
			delete(in.held, k)
			continue
		}
		in.held[k] = n - 1
	}
}

func (in *Input) Quit() bool {
	return in.quit
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	return in.held[key] > 0
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	return in.pressed[key]
}

// Axis maps WASD to movement and the arrow keys to aim.
func (in *Input) Axis(axis render.Axis) float64 {
	switch axis {
	case render.AxisMoveX:
		return render.KeyAxis(in, render.KeyA, render.KeyD)
	case render.AxisMoveY:
		return render.KeyAxis(in, render.KeyS, render.KeyW)
	case render.AxisAimX:
		return render.KeyAxis(in, render.KeyLeft, render.KeyRight)
	case render.AxisAimY:
		return render.KeyAxis(in, render.KeyDown, render.KeyUp)
	}
	return 0
}

func translate(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEscape:
		return render.KeyEscape, true
	case tcell.KeyTab:
		return render.KeyTab, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return render.KeyW, true
		case 'a', 'A':
			return render.KeyA, true
		case 's', 'S':
			return render.KeyS, true
		case 'd', 'D':
			return render.KeyD, true
		case 'p', 'P':
			return render.KeyP, true
		case ' ':
			return render.KeySpace, true
		}
	}
	return 0, false
}

// Surface draws into a tcell screen with the world origin at its center.
// World Y points up, row numbers grow down.
type Surface struct {
	screen tcell.Screen
}

func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

func (s *Surface) Screen() tcell.Screen {
	return s.screen
}

// Size is the usable area in cells. The last row is kept for the status line.
func (s *Surface) Size() (int, int) {
	w, h := s.screen.Size()
	return w, max(h-1, 0)
}

// Cell maps a world position in cell units to a screen cell.
func (s *Surface) Cell(x, y float64) (int, int) {
	w, h := s.Size()
	return w/2 + roundHalfUp(x), h/2 - roundHalfUp(y)
}

// Plot sets one cell if it is on screen.
func (s *Surface) Plot(x, y float64, ch rune, style tcell.Style) {
	cx, cy := s.Cell(x, y)
	w, h := s.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return
	}
	s.screen.SetContent(cx, cy, ch, nil, style)
}

// Status writes text on the last row.
func (s *Surface) Status(text string, style tcell.Style) {
	w, h := s.screen.Size()
	if h == 0 {
		return
	}
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		s.screen.SetContent(x, h-1, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		s.screen.SetContent(x, h-1, ' ', nil, style)
	}
}

func roundHalfUp(v float64) int {
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}
