package projectile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/pool"
	"chosenoffset.com/driftfield/internal/sensor"
)

const poolName = "Projectile"

var ErrInvalidConfig = errors.New("invalid projectile config")

// Config describes the weapon.
type Config struct {
	Speed    float64 // units per second
	Cooldown float64 // seconds between shots
	Capacity int
	Radius   float64
	// Origin is where idle bullets are parked.
	Origin geom.Vec2
}

// DefaultConfig is the stock weapon.
func DefaultConfig() Config {
	return Config{
		Speed:    30,
		Cooldown: 0.15,
		Capacity: 10,
		Radius:   0.5,
		Origin:   geom.V(0, -100),
	}
}

func (c Config) validate() error {
	switch {
	case c.Speed <= 0:
		return fmt.Errorf("%w: speed %g", ErrInvalidConfig, c.Speed)
	case c.Cooldown < 0:
		return fmt.Errorf("%w: cooldown %g", ErrInvalidConfig, c.Cooldown)
	case c.Capacity < 0:
		return fmt.Errorf("%w: capacity %d", ErrInvalidConfig, c.Capacity)
	case c.Radius <= 0:
		return fmt.Errorf("%w: radius %g", ErrInvalidConfig, c.Radius)
	}
	return nil
}

// Hit records a bullet that was released because it entered a target.
type Hit struct {
	Bullet   *Bullet
	Target   int // index into the targets passed to Collide
	Position geom.Vec2
}

// Launcher fires bullets along the aim direction, at most once per cooldown.
type Launcher struct {
	cfg      Config
	pool     *pool.Pool[*Bullet]
	cooldown float64
	fired    int

	detector  *sensor.Detector[*Bullet, int]
	live      []*Bullet
	colliders []sensor.Collider[*Bullet]
	targets   []sensor.Collider[int]
	hits      []Hit

	log *zap.Logger
}

func NewLauncher(cfg Config, logger *zap.Logger) (*Launcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &Launcher{
		cfg:      cfg,
		detector: sensor.NewDetector[*Bullet, int](),
		log:      logger.Named("projectile"),
	}
	l.pool = pool.New(pool.Config[*Bullet]{
		New:              func() *Bullet { return &Bullet{Radius: cfg.Radius} },
		Origin:           cfg.Origin,
		Capacity:         cfg.Capacity,
		Name:             poolName,
		DisableOnRelease: true,
		Logger:           logger,
	})
	return l, nil
}

// Update fires if aim is non-zero and the weapon is ready, counts the
// cooldown down and moves every live bullet.
func (l *Launcher) Update(aim, origin geom.Vec2, dt float64) {
	if !aim.IsZero() && l.cooldown <= 0 {
		b := l.pool.Acquire()
		// A reused bullet must not inherit the overlaps of its last flight.
		l.detector.Forget(b)
		b.SetPosition(origin)
		b.Velocity = aim.Normalize().Scale(l.cfg.Speed)
		l.cooldown = l.cfg.Cooldown
		l.fired++

		if ce := l.log.Check(zap.DebugLevel, "bullet fired"); ce != nil {
			ce.Write(zap.String("bullet", b.Name()), zap.Float64("vx", b.Velocity.X), zap.Float64("vy", b.Velocity.Y))
		}
	}
	l.cooldown -= dt

	for _, b := range l.Bullets() {
		if b.Enabled() {
			b.advance(dt)
		}
	}
}

// Collide releases every bullet that started overlapping one of targets on
// this pass. A bullet entering two targets at once is released once and
// reported against the first. The returned slice is reused by the next call.
func (l *Launcher) Collide(targets []geom.Rect) []Hit {
	l.hits = l.hits[:0]

	l.targets = l.targets[:0]
	for i, r := range targets {
		l.targets = append(l.targets, sensor.Collider[int]{Key: i, Box: r})
	}
	l.colliders = l.colliders[:0]
	for _, b := range l.Bullets() {
		l.colliders = append(l.colliders, sensor.Collider[*Bullet]{Key: b, Box: b.Box()})
	}

	for _, ct := range l.detector.Enter(l.colliders, l.targets) {
		if !l.pool.IsAcquired(ct.Mover) {
			continue
		}
		l.hits = append(l.hits, Hit{Bullet: ct.Mover, Target: ct.Sensor, Position: ct.Mover.Position})
		ct.Mover.Release()
		l.detector.Forget(ct.Mover)
	}
	return l.hits
}

// Bullets returns the bullets currently in flight. The slice is reused by the
// next call.
func (l *Launcher) Bullets() []*Bullet {
	l.live = l.pool.AppendAcquired(l.live[:0])
	return l.live
}

// Ready reports whether the next Update with non-zero aim will fire.
func (l *Launcher) Ready() bool {
	return l.cooldown <= 0
}

// Fired is the number of shots since startup.
func (l *Launcher) Fired() int {
	return l.fired
}

func (l *Launcher) Stats() pool.Stats {
	return l.pool.Stats()
}
