package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/driftfield/internal/core/geom"
)

func box(x, y float64) geom.Rect {
	return geom.RectAt(geom.V(x, y), geom.V(1, 1))
}

func TestEnterFiresOncePerOverlap(t *testing.T) {
	d := NewDetector[string, int]()
	sensors := []Collider[int]{{Key: 7, Box: box(5, 0)}}

	assert.Empty(t, d.Enter([]Collider[string]{{Key: "a", Box: box(0, 0)}}, sensors))

	got := d.Enter([]Collider[string]{{Key: "a", Box: box(4.5, 0)}}, sensors)
	assert.Equal(t, []Contact[string, int]{{Mover: "a", Sensor: 7}}, got)
	assert.True(t, d.Inside("a", 7))

	assert.Empty(t, d.Enter([]Collider[string]{{Key: "a", Box: box(4.8, 0)}}, sensors), "still inside")

	assert.Empty(t, d.Enter([]Collider[string]{{Key: "a", Box: box(0, 0)}}, sensors))
	assert.False(t, d.Inside("a", 7))

	got = d.Enter([]Collider[string]{{Key: "a", Box: box(5, 0)}}, sensors)
	assert.Len(t, got, 1, "re-entering after leaving fires again")
}

func TestEnterOrderAndMissingMovers(t *testing.T) {
	d := NewDetector[string, int]()
	sensors := []Collider[int]{
		{Key: 1, Box: geom.RectAt(geom.V(0, 0), geom.V(10, 1))},
		{Key: 2, Box: geom.RectAt(geom.V(0, 0), geom.V(1, 10))},
	}
	movers := []Collider[string]{
		{Key: "b", Box: box(0, 0)},
		{Key: "a", Box: box(3, 0)},
	}

	got := d.Enter(movers, sensors)
	assert.Equal(t, []Contact[string, int]{
		{Mover: "b", Sensor: 1},
		{Mover: "b", Sensor: 2},
		{Mover: "a", Sensor: 1},
	}, got)

	// A mover absent from a pass is forgotten, so it fires again when it returns.
	d.Enter(movers[:1], sensors)
	assert.False(t, d.Inside("a", 1))
	got = d.Enter(movers, sensors)
	assert.Equal(t, []Contact[string, int]{{Mover: "a", Sensor: 1}}, got)
}

func TestTouchingDoesNotCount(t *testing.T) {
	d := NewDetector[int, int]()
	got := d.Enter([]Collider[int]{{Key: 1, Box: box(1, 0)}}, []Collider[int]{{Key: 2, Box: box(0, 0)}})
	assert.Empty(t, got)
}

func TestReset(t *testing.T) {
	d := NewDetector[int, int]()
	movers := []Collider[int]{{Key: 1, Box: box(0, 0)}}
	sensors := []Collider[int]{{Key: 2, Box: box(0, 0)}}

	assert.Len(t, d.Enter(movers, sensors), 1)
	d.Reset()
	assert.Len(t, d.Enter(movers, sensors), 1)
}

func TestForgetReportsOverlapAgain(t *testing.T) {
	d := NewDetector[int, int]()
	movers := []Collider[int]{{Key: 1, Box: box(0, 0)}, {Key: 3, Box: box(0, 0)}}
	sensors := []Collider[int]{{Key: 2, Box: box(0, 0)}, {Key: 4, Box: box(0.5, 0)}}

	assert.Len(t, d.Enter(movers, sensors), 4)
	d.Forget(1)
	assert.False(t, d.Inside(1, 2))
	assert.False(t, d.Inside(1, 4))
	assert.True(t, d.Inside(3, 2))

	got := d.Enter(movers, sensors)
	assert.Equal(t, []Contact[int, int]{{Mover: 1, Sensor: 2}, {Mover: 1, Sensor: 4}}, got)
}
