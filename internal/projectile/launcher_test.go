package projectile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/driftfield/internal/core/geom"
)

const tick = 1.0 / 60

func newLauncher(t *testing.T, mutate func(*Config)) *Launcher {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	l, err := NewLauncher(cfg, nil)
	require.NoError(t, err)
	return l
}

func TestNewLauncherPrewarmsDisabledBullets(t *testing.T) {
	l := newLauncher(t, nil)

	stats := l.Stats()
	assert.Equal(t, "Projectile", stats.Name)
	assert.Equal(t, 10, stats.Created)
	assert.Equal(t, 10, stats.Released)
	assert.Empty(t, l.Bullets())
	assert.True(t, l.Ready())
}

func TestNewLauncherRejectsBadConfig(t *testing.T) {
	tests := map[string]func(*Config){
		"zero speed":        func(c *Config) { c.Speed = 0 },
		"negative cooldown": func(c *Config) { c.Cooldown = -1 },
		"negative capacity": func(c *Config) { c.Capacity = -2 },
		"zero radius":       func(c *Config) { c.Radius = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			_, err := NewLauncher(cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestUpdateFiresAlongNormalizedAim(t *testing.T) {
	l := newLauncher(t, nil)

	l.Update(geom.V(3, 4), geom.V(1, 1), 0)
	bullets := l.Bullets()
	require.Len(t, bullets, 1)

	b := bullets[0]
	assert.True(t, b.Enabled())
	assert.False(t, b.Attached())
	assert.InDelta(t, 18, b.Velocity.X, 1e-9)
	assert.InDelta(t, 24, b.Velocity.Y, 1e-9)
	assert.Equal(t, geom.V(1, 1), b.Position, "no time passed, bullet stays at the muzzle")
	assert.Equal(t, 1, l.Fired())
}

func TestUpdateHoldsFireWithoutAim(t *testing.T) {
	l := newLauncher(t, nil)
	for i := 0; i < 30; i++ {
		l.Update(geom.Vec2{}, geom.Vec2{}, tick)
	}
	assert.Equal(t, 0, l.Fired())
	assert.True(t, l.Ready())
}

func TestUpdateRespectsCooldown(t *testing.T) {
	l := newLauncher(t, func(c *Config) { c.Cooldown = 0.5 })

	// Shots on ticks 0, 2 and 4.
	for i := 0; i < 5; i++ {
		l.Update(geom.V(1, 0), geom.Vec2{}, 0.25)
	}
	assert.Equal(t, 3, l.Fired())
	assert.False(t, l.Ready())
}

func TestBulletsMove(t *testing.T) {
	l := newLauncher(t, func(c *Config) { c.Speed = 60 })

	l.Update(geom.V(0, -1), geom.Vec2{}, tick)
	l.Update(geom.Vec2{}, geom.Vec2{}, tick)

	b := l.Bullets()[0]
	assert.InDelta(t, -2, b.Position.Y, 1e-9)
	assert.InDelta(t, 0, b.Position.X, 1e-9)
}

func TestPoolGrowsPastCapacity(t *testing.T) {
	l := newLauncher(t, func(c *Config) {
		c.Capacity = 2
		c.Cooldown = 0
	})

	for i := 0; i < 5; i++ {
		l.Update(geom.V(1, 0), geom.Vec2{}, tick)
	}
	assert.Len(t, l.Bullets(), 5)
	assert.Equal(t, 5, l.Stats().Created)
}

func TestCollideReleasesBullet(t *testing.T) {
	l := newLauncher(t, func(c *Config) { c.Speed = 60 })
	wall := geom.Rect{Min: geom.V(4, -5), Max: geom.V(5, 5)}

	l.Update(geom.V(1, 0), geom.Vec2{}, tick)
	var hits []Hit
	for i := 0; i < 10 && len(hits) == 0; i++ {
		hits = append(hits, l.Collide([]geom.Rect{wall})...)
		l.Update(geom.Vec2{}, geom.Vec2{}, tick)
	}

	require.Len(t, hits, 1)
	h := hits[0]
	assert.Equal(t, 0, h.Target)
	assert.Greater(t, h.Position.X, 3.5)

	assert.Empty(t, l.Bullets())
	assert.False(t, h.Bullet.Enabled())
	assert.True(t, h.Bullet.Attached())
	assert.True(t, h.Bullet.Velocity.IsZero())
	assert.Equal(t, geom.V(0, -100), h.Bullet.Position)
}

func TestCollideReportsEachBulletOnce(t *testing.T) {
	l := newLauncher(t, func(c *Config) { c.Cooldown = 0 })
	l.Update(geom.V(1, 0), geom.Vec2{}, 0)

	// Two overlapping targets around the muzzle.
	a := geom.Rect{Min: geom.V(-1, -1), Max: geom.V(1, 1)}
	b := geom.Rect{Min: geom.V(-2, -2), Max: geom.V(2, 2)}
	hits := l.Collide([]geom.Rect{a, b})

	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Target)
	assert.Equal(t, 10, l.Stats().Released)

	// The same bullet comes back first and hits both targets anew.
	l.Update(geom.V(1, 0), geom.Vec2{}, 0)
	require.Len(t, l.Bullets(), 1)
	assert.Same(t, hits[0].Bullet, l.Bullets()[0])
	again := l.Collide([]geom.Rect{a, b})
	require.Len(t, again, 1)
	assert.Equal(t, 0, again[0].Target)
}

func TestReusedBulletHitsTargetAtMuzzle(t *testing.T) {
	l := newLauncher(t, func(c *Config) {
		c.Capacity = 1
		c.Cooldown = 0
	})
	target := geom.Rect{Min: geom.V(-2, -2), Max: geom.V(2, 2)}

	for shot := 1; shot <= 3; shot++ {
		l.Update(geom.V(1, 0), geom.Vec2{}, tick)
		hits := l.Collide([]geom.Rect{target})
		require.Len(t, hits, 1, "shot %d", shot)
		assert.Empty(t, l.Bullets(), "shot %d", shot)
	}
	assert.Equal(t, 1, l.Stats().Created)
	assert.Equal(t, 3, l.Fired())
}

func TestReleasedBulletIsReused(t *testing.T) {
	l := newLauncher(t, func(c *Config) {
		c.Capacity = 1
		c.Cooldown = 0
	})

	l.Update(geom.V(1, 0), geom.Vec2{}, 0)
	first := l.Bullets()[0]
	first.Release()

	l.Update(geom.V(0, 1), geom.Vec2{}, 0)
	second := l.Bullets()[0]
	assert.Same(t, first, second)
	assert.Equal(t, 1, l.Stats().Created)
	assert.InDelta(t, 30, second.Velocity.Y, 1e-9)
}
