package world

import (
	"math"

	"chosenoffset.com/driftfield/internal/core/geom"
)

// Bounds is the extent of tile positions (tile centers, not tile edges).
type Bounds struct {
	Min, Max geom.Vec2
}

// Frame is the context for one simulation tick. It memoizes the tile bounds
// the first time they are read and keeps serving that value for the rest of
// the tick, even after tiles are repositioned. A tick can report several
// crossings and all of them must be resolved against the same layout.
type Frame struct {
	ctrl   *Controller
	number uint64
	dt     float64

	bounds       Bounds
	boundsCached bool

	moved     geom.Vec2
	crossings int
	closed    bool
}

// Number is the tick counter, starting at 1.
func (f *Frame) Number() uint64 {
	return f.number
}

func (f *Frame) DT() float64 {
	return f.dt
}

// Translate moves every tile by move * speed * dt. The input is not
// normalized.
func (f *Frame) Translate(move geom.Vec2) {
	if f.closed {
		return
	}
	delta := move.Scale(f.ctrl.speed * f.dt)
	if delta.IsZero() {
		return
	}
	f.ctrl.checkStride(delta)
	for _, t := range f.ctrl.tiles {
		t.Position = t.Position.Add(delta)
	}
	f.ctrl.scroll = f.ctrl.scroll.Add(delta)
	f.moved = f.moved.Add(delta)
}

// Bounds returns the tile extent for this tick, computing it on first use.
func (f *Frame) Bounds() Bounds {
	if !f.boundsCached {
		f.bounds = f.ctrl.extent()
		f.boundsCached = true
	}
	return f.bounds
}

// BoundsCached reports whether the extent has been computed this tick.
func (f *Frame) BoundsCached() bool {
	return f.boundsCached
}

// Moved is the total displacement applied during this tick.
func (f *Frame) Moved() geom.Vec2 {
	return f.moved
}

// Crossings is the number of tiles repositioned during this tick.
func (f *Frame) Crossings() int {
	return f.crossings
}

// End closes the frame. Closed frames reject crossings and translation.
func (f *Frame) End() {
	f.closed = true
}

func (f *Frame) Closed() bool {
	return f.closed
}

// extent scans every tile for the min/max position.
func (c *Controller) extent() Bounds {
	b := Bounds{
		Min: geom.V(math.Inf(1), math.Inf(1)),
		Max: geom.V(math.Inf(-1), math.Inf(-1)),
	}
	for _, t := range c.tiles {
		b.Min = b.Min.Min(t.Position)
		b.Max = b.Max.Max(t.Position)
	}
	return b
}
