// Package projectile fires pooled bullets from the player and reclaims them
// when they hit something.
package projectile

import (
	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/pool"
)

// Bullet is a pooled projectile travelling in a straight line.
type Bullet struct {
	pool.Entry[*Bullet]

	Position geom.Vec2
	Velocity geom.Vec2 // units per second
	Radius   float64
}

func (b *Bullet) SetPosition(p geom.Vec2) {
	b.Position = p
}

// Release returns the bullet to its pool and stops it.
func (b *Bullet) Release() {
	if owner := b.Owner(); owner != nil {
		owner.Release(b)
	}
	b.Velocity = geom.Vec2{}
}

// Box is the bullet's square hit box.
func (b *Bullet) Box() geom.Rect {
	d := 2 * b.Radius
	return geom.RectAt(b.Position, geom.V(d, d))
}

func (b *Bullet) advance(dt float64) {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}
