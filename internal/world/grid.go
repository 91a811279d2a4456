package world

import (
	"fmt"
	"math"

	"chosenoffset.com/driftfield/internal/core/geom"
)

// DefaultSideBuffer is the number of extra tiles added to each grid axis so
// the grid always over-covers the viewport.
const DefaultSideBuffer = 2

// GridInfo is fixed for the lifetime of a controller.
type GridInfo struct {
	Columns, Rows int
	TileSize      geom.Vec2 // world units
}

// Count is the number of tiles in the grid.
func (g GridInfo) Count() int {
	return g.Columns * g.Rows
}

// HalfExtent is half the grid's size in world units.
func (g GridInfo) HalfExtent() geom.Vec2 {
	return g.TileSize.Mul(geom.V(float64(g.Columns), float64(g.Rows))).Scale(0.5)
}

// Anchor is the initial position of the tile in column 0, row 0. The grid is
// laid out so its center sits on the world origin.
func (g GridInfo) Anchor() geom.Vec2 {
	return geom.V(
		-float64(g.Columns-1)*g.TileSize.X/2,
		-float64(g.Rows-1)*g.TileSize.Y/2,
	)
}

// CellPosition is the initial position of the tile at column i, row j.
func (g GridInfo) CellPosition(i, j int) geom.Vec2 {
	return g.Anchor().Add(geom.V(float64(i)*g.TileSize.X, float64(j)*g.TileSize.Y))
}

// ComputeGrid derives the grid from the viewport size in pixels, one probed
// tile's screen bounds and the pixel density. Each axis gets
// ceil(viewport / tilePixels) + buffer tiles.
func ComputeGrid(viewport geom.Vec2, probe geom.Rect, pixelsPerUnit float64, buffer int) (GridInfo, error) {
	if viewport.X <= 0 || viewport.Y <= 0 {
		return GridInfo{}, fmt.Errorf("invalid viewport %gx%g", viewport.X, viewport.Y)
	}
	if pixelsPerUnit <= 0 {
		return GridInfo{}, fmt.Errorf("invalid pixels per unit %g", pixelsPerUnit)
	}
	if buffer < 0 {
		return GridInfo{}, fmt.Errorf("invalid side buffer %d", buffer)
	}

	pixels := probe.Size()
	if pixels.X <= 0 || pixels.Y <= 0 {
		return GridInfo{}, fmt.Errorf("probed tile has no area: %gx%g px", pixels.X, pixels.Y)
	}

	tileSize := pixels.Scale(1 / pixelsPerUnit)

	return GridInfo{
		Columns:  int(math.Ceil(viewport.X/(tileSize.X*pixelsPerUnit))) + buffer,
		Rows:     int(math.Ceil(viewport.Y/(tileSize.Y*pixelsPerUnit))) + buffer,
		TileSize: tileSize,
	}, nil
}
