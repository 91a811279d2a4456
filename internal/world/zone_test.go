package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/driftfield/internal/core/geom"
)

func TestBuildZonesGeometry(t *testing.T) {
	info := GridInfo{Columns: 5, Rows: 5, TileSize: geom.V(1, 1)}
	zones := BuildZones(info)

	for id, z := range zones {
		assert.Equal(t, ZoneID(id), z.ID)
	}

	assert.Equal(t, geom.V(-4, 0), zones[ZoneLeft].Offset)
	assert.Equal(t, geom.V(4, 0), zones[ZoneRight].Offset)
	assert.Equal(t, geom.V(0, 4), zones[ZoneTop].Offset)
	assert.Equal(t, geom.V(0, -4), zones[ZoneBottom].Offset)

	assert.Equal(t, geom.V(1, 6), zones[ZoneLeft].Size)
	assert.Equal(t, geom.V(6, 1), zones[ZoneTop].Size)

	// Inner faces sit one tile outside the grid's edge.
	assert.Equal(t, -3.5, zones[ZoneLeft].Rect().Max.X)
	assert.Equal(t, 3.5, zones[ZoneRight].Rect().Min.X)
	assert.Equal(t, 3.5, zones[ZoneTop].Rect().Min.Y)
	assert.Equal(t, -3.5, zones[ZoneBottom].Rect().Max.Y)
}

func TestZonesNeverTouch(t *testing.T) {
	info := GridInfo{Columns: 7, Rows: 4, TileSize: geom.V(2, 3)}
	zones := BuildZones(info)

	grow := geom.V(1e-9, 1e-9)
	for i := range zones {
		for j := i + 1; j < len(zones); j++ {
			a := zones[i].Rect()
			a.Min = a.Min.Sub(grow)
			a.Max = a.Max.Add(grow)
			assert.False(t, a.Overlaps(zones[j].Rect()), "%v touches %v", zones[i].ID, zones[j].ID)
		}
	}
}

func TestZonesDoNotOverlapInitialTiles(t *testing.T) {
	info := GridInfo{Columns: 6, Rows: 5, TileSize: geom.V(1.5, 1)}
	zones := BuildZones(info)

	for i := 0; i < info.Columns; i++ {
		for j := 0; j < info.Rows; j++ {
			box := geom.RectAt(info.CellPosition(i, j), info.TileSize)
			for _, z := range zones {
				assert.False(t, box.Overlaps(z.Rect()), "tile %d,%d starts inside %v", i, j, z.ID)
			}
		}
	}
}

func TestZoneIDString(t *testing.T) {
	assert.Equal(t, "left", ZoneLeft.String())
	assert.Equal(t, "bottom", ZoneBottom.String())
	assert.Equal(t, "zone(9)", ZoneID(9).String())
	assert.False(t, ZoneID(-1).Valid())
	assert.True(t, ZoneTop.Valid())
}
