package world

import (
	"math"

	"github.com/aquilax/go-perlin"

	"chosenoffset.com/driftfield/internal/core/geom"
)

// Perlin parameters: each octave doubles frequency (beta) and halves weight
// (alpha).
const (
	terrainAlpha   = 2.0
	terrainBeta    = 2.0
	terrainOctaves = 3
)

// Terrain picks a sprite variant for each world cell. The same cell always
// yields the same variant, so ground that scrolls away and back looks the same.
type Terrain struct {
	noise    *perlin.Perlin
	variants int
	scale    float64
}

// NewTerrain builds a terrain with the given number of variants. Fewer than one
// variant is treated as one.
func NewTerrain(seed int64, variants int, scale float64) *Terrain {
	if variants < 1 {
		variants = 1
	}
	if scale <= 0 {
		scale = 0.1
	}
	return &Terrain{
		noise:    perlin.NewPerlin(terrainAlpha, terrainBeta, terrainOctaves, seed),
		variants: variants,
		scale:    scale,
	}
}

func (t *Terrain) Variants() int {
	return t.variants
}

// Variant maps cell to [0, Variants).
func (t *Terrain) Variant(cell geom.Cell) int {
	if t.variants == 1 {
		return 0
	}
	// Noise2D is zero on integer lattice points, so sample between them.
	x := (float64(cell.X) + 0.5) * t.scale
	y := (float64(cell.Y) + 0.5) * t.scale
	n := (t.noise.Noise2D(x, y) + 1) / 2

	v := int(math.Floor(n * float64(t.variants)))
	if v < 0 {
		return 0
	}
	if v >= t.variants {
		return t.variants - 1
	}
	return v
}
