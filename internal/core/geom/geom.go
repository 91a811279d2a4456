// Package geom holds the small amount of 2D math shared by the simulation core.
// World space is y-up; conversion to screen space happens in the front-ends.
package geom

import "math"

// Vec2 represents a 2D vector or point in world units
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Div divides component-wise. Callers guarantee o has no zero component.
func (v Vec2) Div(o Vec2) Vec2 {
	return Vec2{X: v.X / o.X, Y: v.Y / o.Y}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Min returns the component-wise minimum
func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y)}
}

// Max returns the component-wise maximum
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{X: math.Max(v.X, o.X), Y: math.Max(v.Y, o.Y)}
}

// Cell is an integer grid coordinate
type Cell struct {
	X, Y int
}

// Round snaps v to the nearest cell.
func (v Vec2) Round() Cell {
	return Cell{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

// Rect is an axis-aligned box. Min is the lower-left corner in world space.
type Rect struct {
	Min, Max Vec2
}

// RectAt builds a box of the given size centered on center.
func RectAt(center, size Vec2) Rect {
	half := size.Scale(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Scale(0.5)
}

// Overlaps reports whether r and o share interior area. Boxes that only touch
// along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
