package world

import (
	"fmt"

	"chosenoffset.com/driftfield/internal/core/geom"
)

// ZoneID tags one of the four sensor regions around the grid.
type ZoneID int

const (
	ZoneLeft ZoneID = iota
	ZoneRight
	ZoneTop
	ZoneBottom
)

// zoneCount is the number of valid zone IDs.
const zoneCount = 4

func (z ZoneID) String() string {
	switch z {
	case ZoneLeft:
		return "left"
	case ZoneRight:
		return "right"
	case ZoneTop:
		return "top"
	case ZoneBottom:
		return "bottom"
	default:
		return fmt.Sprintf("zone(%d)", int(z))
	}
}

// Valid reports whether z names one of the four zones.
func (z ZoneID) Valid() bool {
	return z >= 0 && z < zoneCount
}

// EdgeZone is a sensor region positioned relative to the grid center.
type EdgeZone struct {
	ID     ZoneID
	Size   geom.Vec2
	Offset geom.Vec2
}

// Rect is the zone's box in world space.
func (z EdgeZone) Rect() geom.Rect {
	return geom.RectAt(z.Offset, z.Size)
}

// zoneOutset is how far past the grid's half extent a zone's center sits, in
// tiles. With a thickness of one tile the inner face is one tile outside the
// grid.
const zoneOutset = 1.5

// zoneOverhang is how far, in tiles, each zone runs past the grid's corners.
// A corner tile moving diagonally then trips both neighbouring zones in the
// same tick, as long as it moves less than this much per tick on each axis.
// Neighbouring zones still keep a half-tile gap at each corner.
const zoneOverhang = 0.5

// BuildZones places the four zones around the grid. Side zones span the grid's
// height and top/bottom zones its width, plus the overhang at both ends.
func BuildZones(info GridInfo) [zoneCount]EdgeZone {
	half := info.HalfExtent()
	ts := info.TileSize

	vertical := geom.V(ts.X, half.Y*2+2*zoneOverhang*ts.Y)
	horizontal := geom.V(half.X*2+2*zoneOverhang*ts.X, ts.Y)

	x := half.X + zoneOutset*ts.X
	y := half.Y + zoneOutset*ts.Y

	return [zoneCount]EdgeZone{
		ZoneLeft:   {ID: ZoneLeft, Size: vertical, Offset: geom.V(-x, 0)},
		ZoneRight:  {ID: ZoneRight, Size: vertical, Offset: geom.V(x, 0)},
		ZoneTop:    {ID: ZoneTop, Size: horizontal, Offset: geom.V(0, y)},
		ZoneBottom: {ID: ZoneBottom, Size: horizontal, Offset: geom.V(0, -y)},
	}
}
