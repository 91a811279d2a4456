package world

import (
	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/pool"
)

// Boundary receives zone-entry reports from tiles. The Controller implements it
// and hands itself to every tile it creates.
type Boundary interface {
	TileCrossed(f *Frame, t *Tile, zone ZoneID) error
}

// Tile is one cell of the scrolling grid.
type Tile struct {
	pool.Entry[*Tile]

	Position geom.Vec2
	// Variant indexes the tile's sprite; it follows the tile's world cell.
	Variant int

	boundary Boundary
}

func newTile(boundary Boundary) *Tile {
	return &Tile{boundary: boundary}
}

func (t *Tile) SetPosition(p geom.Vec2) {
	t.Position = p
}

// Release hands the tile back to its pool. The controller never does this
// during play; the grid is fixed for the session.
func (t *Tile) Release() {
	if owner := t.Owner(); owner != nil {
		owner.Release(t)
	}
}

// ZoneEntered reports that the tile started overlapping zone during frame f.
func (t *Tile) ZoneEntered(f *Frame, zone ZoneID) error {
	return t.boundary.TileCrossed(f, t, zone)
}
