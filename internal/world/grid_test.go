package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/driftfield/internal/core/geom"
)

func pixels(w, h float64) geom.Rect {
	return geom.Rect{Max: geom.V(w, h)}
}

func TestComputeGridCoverage(t *testing.T) {
	tests := []struct {
		name     string
		viewport geom.Vec2
		probe    geom.Rect
		ppu      float64
	}{
		{"hd 32px tiles", geom.V(1920, 1080), pixels(32, 32), 8},
		{"odd viewport", geom.V(1001, 77), pixels(32, 32), 8},
		{"non-square tile", geom.V(1280, 720), pixels(48, 24), 16},
		{"tiny", geom.V(1, 1), pixels(8, 8), 8},
		{"fractional density", geom.V(640, 480), pixels(10, 10), 2.5},
		{"terminal cells", geom.V(80, 24), pixels(1, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ComputeGrid(tt.viewport, tt.probe, tt.ppu, DefaultSideBuffer)
			require.NoError(t, err)

			ts := info.TileSize
			assert.InDelta(t, tt.probe.Size().X/tt.ppu, ts.X, 1e-12)
			assert.InDelta(t, tt.probe.Size().Y/tt.ppu, ts.Y, 1e-12)

			minCols := int(math.Ceil(tt.viewport.X/(ts.X*tt.ppu))) + 2
			minRows := int(math.Ceil(tt.viewport.Y/(ts.Y*tt.ppu))) + 2
			assert.GreaterOrEqual(t, info.Columns, minCols)
			assert.GreaterOrEqual(t, info.Rows, minRows)

			// The grid, minus the buffer, still spans the whole viewport.
			covered := geom.V(float64(info.Columns-2), float64(info.Rows-2)).Mul(ts).Scale(tt.ppu)
			assert.GreaterOrEqual(t, covered.X, tt.viewport.X)
			assert.GreaterOrEqual(t, covered.Y, tt.viewport.Y)
		})
	}
}

func TestComputeGridExact(t *testing.T) {
	info, err := ComputeGrid(geom.V(1920, 1080), pixels(32, 32), 8, 2)
	require.NoError(t, err)
	assert.Equal(t, GridInfo{Columns: 62, Rows: 36, TileSize: geom.V(4, 4)}, info)
	assert.Equal(t, 62*36, info.Count())
}

func TestComputeGridRejectsBadInput(t *testing.T) {
	_, err := ComputeGrid(geom.V(0, 100), pixels(8, 8), 8, 2)
	assert.Error(t, err)
	_, err = ComputeGrid(geom.V(100, 100), pixels(8, 8), 0, 2)
	assert.Error(t, err)
	_, err = ComputeGrid(geom.V(100, 100), pixels(0, 8), 8, 2)
	assert.Error(t, err)
	_, err = ComputeGrid(geom.V(100, 100), pixels(8, 8), 8, -1)
	assert.Error(t, err)
}

func TestCellPositionCentersGrid(t *testing.T) {
	info := GridInfo{Columns: 4, Rows: 3, TileSize: geom.V(2, 1)}

	assert.Equal(t, geom.V(-3, -1), info.Anchor())
	assert.Equal(t, geom.V(3, 1), info.CellPosition(3, 2))
	assert.Equal(t, geom.V(4, 1.5), info.HalfExtent())
}
