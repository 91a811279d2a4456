// Package config loads the game's settings. Every field has a default, and a
// settings file only needs to name what it changes.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/projectile"
	"chosenoffset.com/driftfield/internal/world"
)

var ErrInvalid = errors.New("invalid config")

// Config holds all settings for a session
type Config struct {
	Display    DisplayConfig    `toml:"display" yaml:"display" json:"display"`
	World      WorldConfig      `toml:"world" yaml:"world" json:"world"`
	Projectile ProjectileConfig `toml:"projectile" yaml:"projectile" json:"projectile"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging" json:"logging"`
}

// DisplayConfig describes the logical screen and the window showing it
type DisplayConfig struct {
	Width         int     `toml:"width" yaml:"width" json:"width"`                      // Logical screen width in pixels
	Height        int     `toml:"height" yaml:"height" json:"height"`                   // Logical screen height in pixels
	WindowWidth   int     `toml:"window_width" yaml:"window_width" json:"window_width"` // Initial window size
	WindowHeight  int     `toml:"window_height" yaml:"window_height" json:"window_height"`
	PixelsPerUnit float64 `toml:"pixels_per_unit" yaml:"pixels_per_unit" json:"pixels_per_unit"` // Screen pixels per world unit
	TPS           int     `toml:"tps" yaml:"tps" json:"tps"`                                     // Simulation ticks per second
	Title         string  `toml:"title" yaml:"title" json:"title"`
	Fullscreen    bool    `toml:"fullscreen" yaml:"fullscreen" json:"fullscreen"`
}

// WorldConfig defines the scrolling ground
type WorldConfig struct {
	Speed      float64 `toml:"speed" yaml:"speed" json:"speed"`                   // World units per second at full input
	SideBuffer int     `toml:"side_buffer" yaml:"side_buffer" json:"side_buffer"` // Extra tiles per axis beyond the viewport
	TilePixels int     `toml:"tile_pixels" yaml:"tile_pixels" json:"tile_pixels"` // Size of a tile sprite
	Variants   int     `toml:"variants" yaml:"variants" json:"variants"`          // Number of ground sprites
	NoiseSeed  int64   `toml:"noise_seed" yaml:"noise_seed" json:"noise_seed"`
	NoiseScale float64 `toml:"noise_scale" yaml:"noise_scale" json:"noise_scale"` // Noise frequency per tile
	Atlas      string  `toml:"atlas" yaml:"atlas" json:"atlas"`                   // Atlas JSON; empty uses built-in placeholders
}

// ProjectileConfig defines the player's weapon
type ProjectileConfig struct {
	Speed    float64 `toml:"speed" yaml:"speed" json:"speed"`          // World units per second
	Cooldown float64 `toml:"cooldown" yaml:"cooldown" json:"cooldown"` // Seconds between shots
	Capacity int     `toml:"capacity" yaml:"capacity" json:"capacity"` // Bullets created up front
	Radius   float64 `toml:"radius" yaml:"radius" json:"radius"`
}

// LoggingConfig selects the log level, encoding and destination
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" json:"level"`    // debug, info, warn, error
	Format string `toml:"format" yaml:"format" json:"format"` // json or console
	Output string `toml:"output" yaml:"output" json:"output"` // stderr, stdout or a file path
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:         1920,
			Height:        1080,
			WindowWidth:   1280,
			WindowHeight:  720,
			PixelsPerUnit: 8,
			TPS:           60,
			Title:         "Driftfield",
		},
		World: WorldConfig{
			Speed:      3,
			SideBuffer: world.DefaultSideBuffer,
			TilePixels: 32,
			Variants:   4,
			NoiseSeed:  1,
			NoiseScale: 0.1,
		},
		Projectile: ProjectileConfig{
			Speed:    30,
			Cooldown: 0.15,
			Capacity: 10,
			Radius:   0.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Load reads settings from path over the defaults. The format follows the
// extension: .toml, .yaml/.yml or .json. A missing file yields the defaults.
// Keys the config does not know are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// Validate rejects settings the game cannot run with. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	d := c.Display
	check(d.Width > 0 && d.Height > 0, "display size %dx%d", d.Width, d.Height)
	check(d.WindowWidth > 0 && d.WindowHeight > 0, "window size %dx%d", d.WindowWidth, d.WindowHeight)
	check(d.PixelsPerUnit > 0, "pixels_per_unit %g", d.PixelsPerUnit)
	check(d.TPS > 0, "tps %d", d.TPS)

	w := c.World
	check(w.Speed >= 0, "world speed %g", w.Speed)
	check(w.SideBuffer >= 0, "side_buffer %d", w.SideBuffer)
	check(w.TilePixels > 0, "tile_pixels %d", w.TilePixels)
	check(w.Variants > 0, "variants %d", w.Variants)
	check(w.NoiseScale > 0, "noise_scale %g", w.NoiseScale)

	p := c.Projectile
	check(p.Speed > 0, "projectile speed %g", p.Speed)
	check(p.Cooldown >= 0, "cooldown %g", p.Cooldown)
	check(p.Capacity >= 0, "capacity %d", p.Capacity)
	check(p.Radius > 0, "radius %g", p.Radius)

	switch c.Logging.Format {
	case "json", "console":
	default:
		check(false, "log format %q", c.Logging.Format)
	}

	return errors.Join(errs...)
}

// Viewport is the logical screen size in pixels.
func (c *Config) Viewport() geom.Vec2 {
	return geom.V(float64(c.Display.Width), float64(c.Display.Height))
}

// Dt is the fixed simulation step in seconds.
func (c *Config) Dt() float64 {
	return 1 / float64(c.Display.TPS)
}

// WorldController converts the settings to the world controller's config.
func (c *Config) WorldController() world.Config {
	return world.Config{
		Viewport:      c.Viewport(),
		PixelsPerUnit: c.Display.PixelsPerUnit,
		SideBuffer:    c.World.SideBuffer,
		Speed:         c.World.Speed,
		Variants:      c.World.Variants,
		NoiseSeed:     c.World.NoiseSeed,
		NoiseScale:    c.World.NoiseScale,
		PoolOrigin:    geom.V(0, -100),
	}
}

// Launcher converts the settings to the launcher's config.
func (c *Config) Launcher() projectile.Config {
	pc := projectile.DefaultConfig()
	pc.Speed = c.Projectile.Speed
	pc.Cooldown = c.Projectile.Cooldown
	pc.Capacity = c.Projectile.Capacity
	pc.Radius = c.Projectile.Radius
	return pc
}
