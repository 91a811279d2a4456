package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/driftfield/internal/core/geom"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, geom.V(1920, 1080), cfg.Viewport())
	assert.InDelta(t, 1.0/60, cfg.Dt(), 1e-15)
	assert.Equal(t, 10, cfg.Projectile.Capacity)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"game.toml", `
[display]
pixels_per_unit = 16

[world]
speed = 4.5
noise_seed = 42
`},
		{"game.yaml", `
display:
  pixels_per_unit: 16
world:
  speed: 4.5
  noise_seed: 42
`},
		{"game.json", `{"display": {"pixels_per_unit": 16}, "world": {"speed": 4.5, "noise_seed": 42}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.name, tt.body))
			require.NoError(t, err)

			assert.Equal(t, 16.0, cfg.Display.PixelsPerUnit)
			assert.Equal(t, 4.5, cfg.World.Speed)
			assert.Equal(t, int64(42), cfg.World.NoiseSeed)

			// Untouched keys keep their defaults.
			assert.Equal(t, 1920, cfg.Display.Width)
			assert.Equal(t, 4, cfg.World.Variants)
			assert.Equal(t, 0.15, cfg.Projectile.Cooldown)
		})
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	for name, body := range map[string]string{
		"typo.toml": "[world]\nsped = 2\n",
		"typo.yaml": "world:\n  sped: 2\n",
		"typo.json": `{"world": {"sped": 2}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, name, body))
			assert.ErrorContains(t, err, "sped")
		})
	}
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	_, err := Load(writeFile(t, "game.ini", "speed=1"))
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoadValidates(t *testing.T) {
	_, err := Load(writeFile(t, "bad.toml", "[display]\ntps = 0\n[projectile]\nradius = -1\n"))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "tps 0")
	assert.ErrorContains(t, err, "radius -1")
}

func TestValidateLogFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.World.Speed = 5
	cfg.Projectile.Cooldown = 0.3

	wc := cfg.WorldController()
	assert.Equal(t, geom.V(1920, 1080), wc.Viewport)
	assert.Equal(t, 8.0, wc.PixelsPerUnit)
	assert.Equal(t, 5.0, wc.Speed)
	assert.Equal(t, 2, wc.SideBuffer)

	lc := cfg.Launcher()
	assert.Equal(t, 0.3, lc.Cooldown)
	assert.Equal(t, 30.0, lc.Speed)
	assert.Equal(t, 10, lc.Capacity)
}
