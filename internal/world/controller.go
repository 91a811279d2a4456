// Package world simulates an unbounded scrolling ground with a fixed grid of
// tiles. The player stays at the origin while the grid moves under it; a tile
// that drifts one tile past an edge is moved to just outside the opposite edge.
// Keeping everything near the origin avoids the precision loss of large
// coordinates.
package world

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/pool"
	"chosenoffset.com/driftfield/internal/sensor"
)

var (
	ErrUnknownZone  = errors.New("unknown edge zone")
	ErrFrameClosed  = errors.New("frame already ended")
	ErrForeignFrame = errors.New("frame belongs to another controller")
	ErrForeignTile  = errors.New("tile belongs to another controller")
)

// Prober measures one template tile. The returned rectangle is the tile's
// visual bounds projected to screen pixels.
type Prober interface {
	ProbeTile() (geom.Rect, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func() (geom.Rect, error)

func (f ProberFunc) ProbeTile() (geom.Rect, error) {
	return f()
}

// Config holds the controller's startup parameters.
type Config struct {
	Viewport      geom.Vec2 // pixels
	PixelsPerUnit float64
	SideBuffer    int
	// Speed is the scroll speed in world units per second for unit input.
	Speed float64

	Variants   int
	NoiseSeed  int64
	NoiseScale float64

	// PoolOrigin is where the tile pool parks unused tiles.
	PoolOrigin geom.Vec2
}

// Controller owns the tile grid and its four edge zones.
type Controller struct {
	info    GridInfo
	speed   float64
	tiles   []*Tile
	zones   [zoneCount]EdgeZone
	pool    *pool.Pool[*Tile]
	terrain *Terrain

	scroll      geom.Vec2
	frames      uint64
	current     *Frame
	warnedSpeed bool

	detector      *sensor.Detector[*Tile, ZoneID]
	tileColliders []sensor.Collider[*Tile]
	zoneColliders []sensor.Collider[ZoneID]

	log *zap.Logger
}

// NewController probes the tile size, sizes the grid to over-cover the
// viewport, lays the tiles out centered on the origin and builds the edge
// zones. Any failure here leaves the game without a world and is fatal.
func NewController(cfg Config, prober Prober, logger *zap.Logger) (*Controller, error) {
	if prober == nil {
		return nil, errors.New("world: prober is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	probe, err := prober.ProbeTile()
	if err != nil {
		return nil, fmt.Errorf("probe tile: %w", err)
	}

	info, err := ComputeGrid(cfg.Viewport, probe, cfg.PixelsPerUnit, cfg.SideBuffer)
	if err != nil {
		return nil, fmt.Errorf("compute grid: %w", err)
	}

	c := &Controller{
		info:     info,
		speed:    cfg.Speed,
		terrain:  NewTerrain(cfg.NoiseSeed, cfg.Variants, cfg.NoiseScale),
		detector: sensor.NewDetector[*Tile, ZoneID](),
		log:      logger.Named("world"),
	}

	c.pool = pool.New(pool.Config[*Tile]{
		New:      func() *Tile { return newTile(c) },
		Origin:   cfg.PoolOrigin,
		Capacity: info.Count(),
		Name:     "WorldTile",
		Logger:   logger,
	})

	c.tiles = make([]*Tile, 0, info.Count())
	for i := 0; i < info.Columns; i++ {
		for j := 0; j < info.Rows; j++ {
			t := c.pool.Acquire()
			t.SetPosition(info.CellPosition(i, j))
			t.Variant = c.terrain.Variant(geom.Cell{X: i, Y: j})
			c.tiles = append(c.tiles, t)
		}
	}

	c.zones = BuildZones(info)
	c.zoneColliders = make([]sensor.Collider[ZoneID], 0, zoneCount)
	for _, z := range c.zones {
		c.zoneColliders = append(c.zoneColliders, sensor.Collider[ZoneID]{Key: z.ID, Box: z.Rect()})
	}
	c.tileColliders = make([]sensor.Collider[*Tile], len(c.tiles))

	c.log.Info("world grid ready",
		zap.Int("columns", info.Columns),
		zap.Int("rows", info.Rows),
		zap.Float64("tile_w", info.TileSize.X),
		zap.Float64("tile_h", info.TileSize.Y),
	)

	return c, nil
}

// BeginFrame closes the previous frame, if any, and starts a new tick.
func (c *Controller) BeginFrame(dt float64) *Frame {
	if c.current != nil {
		c.current.End()
	}
	c.frames++
	c.current = &Frame{ctrl: c, number: c.frames, dt: dt}
	return c.current
}

// Step runs one full tick: translate the grid, detect tiles that entered an
// edge zone and recycle them. Every contact is delivered even if an earlier
// one failed; the failures are joined.
func (c *Controller) Step(move geom.Vec2, dt float64) (*Frame, error) {
	f := c.BeginFrame(dt)
	defer f.End()

	f.Translate(move)

	for i, t := range c.tiles {
		c.tileColliders[i] = sensor.Collider[*Tile]{Key: t, Box: c.TileBox(t)}
	}

	var errs []error
	for _, ct := range c.detector.Enter(c.tileColliders, c.zoneColliders) {
		if err := ct.Mover.ZoneEntered(f, ct.Sensor); err != nil {
			errs = append(errs, err)
		}
	}

	return f, errors.Join(errs...)
}

// TileCrossed moves t to just outside the edge opposite zone, one tile beyond
// the frame's cached extent. The perpendicular coordinate is kept.
func (c *Controller) TileCrossed(f *Frame, t *Tile, zone ZoneID) error {
	if f == nil || f.ctrl != c {
		return ErrForeignFrame
	}
	if f.closed {
		return ErrFrameClosed
	}
	if t == nil || t.Owner() != pool.Releaser[*Tile](c.pool) {
		return ErrForeignTile
	}
	if !zone.Valid() {
		c.log.Warn("tile entered unknown edge zone; position unchanged",
			zap.String("tile", t.Name()),
			zap.Stringer("zone", zone),
			zap.Uint64("frame", f.number),
		)
		return fmt.Errorf("tile %s: %w: %v", t.Name(), ErrUnknownZone, zone)
	}

	b := f.Bounds()
	ts := c.info.TileSize
	pos := t.Position

	switch zone {
	case ZoneLeft:
		pos.X = b.Max.X + ts.X
	case ZoneRight:
		pos.X = b.Min.X - ts.X
	case ZoneTop:
		pos.Y = b.Min.Y - ts.Y
	case ZoneBottom:
		pos.Y = b.Max.Y + ts.Y
	}

	t.SetPosition(pos)
	t.Variant = c.terrain.Variant(c.CellOf(pos))
	f.crossings++

	if ce := c.log.Check(zap.DebugLevel, "tile recycled"); ce != nil {
		ce.Write(
			zap.String("tile", t.Name()),
			zap.Stringer("zone", zone),
			zap.Float64("x", pos.X),
			zap.Float64("y", pos.Y),
		)
	}

	return nil
}

// checkStride warns once if a single tick moves the grid far enough that a
// corner tile can slip past the zone overhang.
func (c *Controller) checkStride(delta geom.Vec2) {
	if c.warnedSpeed {
		return
	}
	limit := c.info.TileSize.Scale(zoneOverhang)
	if math.Abs(delta.X) < limit.X && math.Abs(delta.Y) < limit.Y {
		return
	}
	c.warnedSpeed = true
	c.log.Warn("grid moved more than half a tile in one tick; diagonal recycling may miss corners",
		zap.Float64("dx", delta.X),
		zap.Float64("dy", delta.Y),
	)
}

// CellOf maps a world position to the logical world cell currently shown
// there, taking the accumulated scroll into account.
func (c *Controller) CellOf(pos geom.Vec2) geom.Cell {
	return pos.Sub(c.scroll).Sub(c.info.Anchor()).Div(c.info.TileSize).Round()
}

// TileBox is the tile's box in world space.
func (c *Controller) TileBox(t *Tile) geom.Rect {
	return geom.RectAt(t.Position, c.info.TileSize)
}

func (c *Controller) Info() GridInfo {
	return c.info
}

// Tiles returns the live tile list. Callers must not modify it.
func (c *Controller) Tiles() []*Tile {
	return c.tiles
}

func (c *Controller) Zones() [zoneCount]EdgeZone {
	return c.zones
}

// Zone looks a zone up by ID.
func (c *Controller) Zone(id ZoneID) (EdgeZone, bool) {
	if !id.Valid() {
		return EdgeZone{}, false
	}
	return c.zones[id], true
}

// ZoneRects returns the four zone boxes in ZoneID order.
func (c *Controller) ZoneRects() []geom.Rect {
	rects := make([]geom.Rect, 0, zoneCount)
	for _, z := range c.zones {
		rects = append(rects, z.Rect())
	}
	return rects
}

func (c *Controller) Speed() float64 {
	return c.speed
}

// Scroll is the total displacement applied to the grid since startup.
func (c *Controller) Scroll() geom.Vec2 {
	return c.scroll
}

// FrameNumber is the number of the most recent frame, zero before the first.
func (c *Controller) FrameNumber() uint64 {
	return c.frames
}

func (c *Controller) PoolStats() pool.Stats {
	return c.pool.Stats()
}

func (c *Controller) Terrain() *Terrain {
	return c.terrain
}
