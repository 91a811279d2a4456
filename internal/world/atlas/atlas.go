// Package atlas loads the sprite sheet that holds the ground variants and the
// small set of gameplay sprites.
package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/render"
)

// Tile kinds stored in the "kind" property.
const (
	KindGround = "ground"
	KindSprite = "sprite"
)

var ErrNoGround = errors.New("atlas has no ground tiles")

// TileDefinition defines a single tile within an atlas
type TileDefinition struct {
	Name       string                 `json:"name"`       // Semantic name (e.g., "ground_2", "bullet")
	AtlasX     int                    `json:"atlas_x"`    // X position in atlas (in tiles)
	AtlasY     int                    `json:"atlas_y"`    // Y position in atlas (in tiles)
	Properties map[string]interface{} `json:"properties"` // kind, variant, ...
}

// AtlasConfig defines the JSON configuration for a sprite atlas
type AtlasConfig struct {
	Name       string           `json:"name"`        // Atlas name
	ImagePath  string           `json:"image_path"`  // Atlas image, relative to the config file
	TileWidth  int              `json:"tile_width"`  // Width of each tile in pixels
	TileHeight int              `json:"tile_height"` // Height of each tile in pixels
	Tiles      []TileDefinition `json:"tiles"`       // Array of tile definitions
}

func (c *AtlasConfig) validate() error {
	if c.TileWidth <= 0 || c.TileHeight <= 0 {
		return fmt.Errorf("invalid tile dimensions: %dx%d", c.TileWidth, c.TileHeight)
	}
	seen := make(map[string]bool, len(c.Tiles))
	for i, t := range c.Tiles {
		if t.Name == "" {
			return fmt.Errorf("tile %d has no name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate tile %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// Atlas represents a loaded sprite atlas
type Atlas struct {
	Config      *AtlasConfig
	Image       render.Image
	TilesByName map[string]*TileDefinition // Quick lookup by name

	// ground tiles ordered by their "variant" property
	ground []*TileDefinition
}

// LoadAtlas loads a sprite atlas from a JSON configuration file
func LoadAtlas(configPath string, loader render.ResourceLoader) (*Atlas, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config %s: %w", configPath, err)
	}

	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in atlas config")
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("atlas config %s: %w", configPath, err)
	}

	imagePath := config.ImagePath
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(configPath), imagePath)
	}
	img, err := loader.LoadImage(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", imagePath, err)
	}

	return New(&config, img)
}

// New builds an atlas from an already loaded image.
func New(config *AtlasConfig, img render.Image) (*Atlas, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	a := &Atlas{
		Config:      config,
		Image:       img,
		TilesByName: make(map[string]*TileDefinition, len(config.Tiles)),
	}
	for i := range config.Tiles {
		tile := &config.Tiles[i]
		a.TilesByName[tile.Name] = tile
		if tile.GetTilePropertyString("kind", "") == KindGround {
			a.ground = append(a.ground, tile)
		}
	}
	sort.SliceStable(a.ground, func(i, j int) bool {
		return a.ground[i].GetTilePropertyInt("variant", 0) < a.ground[j].GetTilePropertyInt("variant", 0)
	})

	return a, nil
}

// GetTile returns a tile definition by name
func (a *Atlas) GetTile(name string) (*TileDefinition, bool) {
	tile, ok := a.TilesByName[name]
	return tile, ok
}

// GetTileSubImage returns the sub-image for a specific tile
func (a *Atlas) GetTileSubImage(tile *TileDefinition) render.Image {
	x := tile.AtlasX * a.Config.TileWidth
	y := tile.AtlasY * a.Config.TileHeight
	rect := image.Rect(x, y, x+a.Config.TileWidth, y+a.Config.TileHeight)
	return a.Image.SubImage(rect)
}

// GetTileSubImageByName returns the sub-image for a tile by name
func (a *Atlas) GetTileSubImageByName(name string) (render.Image, error) {
	tile, ok := a.GetTile(name)
	if !ok {
		return nil, fmt.Errorf("tile not found: %s", name)
	}
	return a.GetTileSubImage(tile), nil
}

// GroundCount is the number of ground variants.
func (a *Atlas) GroundCount() int {
	return len(a.ground)
}

// Ground returns the sprite for ground variant v. Out-of-range variants wrap,
// so a terrain with more variants than the atlas still draws.
func (a *Atlas) Ground(v int) (render.Image, bool) {
	n := len(a.ground)
	if n == 0 {
		return nil, false
	}
	v %= n
	if v < 0 {
		v += n
	}
	return a.GetTileSubImage(a.ground[v]), true
}

// ProbeTile reports the pixel bounds of the first ground tile. The world
// sizes its grid from it.
func (a *Atlas) ProbeTile() (geom.Rect, error) {
	if len(a.ground) == 0 {
		return geom.Rect{}, ErrNoGround
	}
	return geom.Rect{Max: geom.V(float64(a.Config.TileWidth), float64(a.Config.TileHeight))}, nil
}

// GetTileProperty retrieves a property from a tile definition
func (td *TileDefinition) GetTileProperty(key string) (interface{}, bool) {
	if td.Properties == nil {
		return nil, false
	}
	val, ok := td.Properties[key]
	return val, ok
}

// GetTilePropertyString retrieves a string property
func (td *TileDefinition) GetTilePropertyString(key string, defaultVal string) string {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	if strVal, ok := val.(string); ok {
		return strVal
	}
	return defaultVal
}

// GetTilePropertyInt retrieves an integer property
func (td *TileDefinition) GetTilePropertyInt(key string, defaultVal int) int {
	val, ok := td.GetTileProperty(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64: // JSON numbers
		return int(v)
	case int:
		return v
	}
	return defaultVal
}
