// Package placeholders draws stand-in sprites so the game runs without art.
package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"chosenoffset.com/driftfield/internal/world/atlas"
)

// TileSize is the default size for placeholder tiles
const TileSize = 32

// File names written by Save.
const (
	ImageFile  = "tiles.png"
	ConfigFile = "tiles.json"
)

// Sprite names in the generated atlas.
const (
	SpriteBullet = "bullet"
	SpritePlayer = "player"
)

// ColorPalette defines colors for the ground and the sprites (dusty plain)
var ColorPalette = struct {
	// Ground, cycled through by variant
	Ground  []color.RGBA
	Pattern color.RGBA

	// Sprites
	Player        color.RGBA
	PlayerOutline color.RGBA
	Bullet        color.RGBA
	BulletOutline color.RGBA
}{
	Ground: []color.RGBA{
		{118, 104, 78, 255},  // Packed dirt
		{132, 118, 86, 255},  // Dry dirt
		{96, 112, 70, 255},   // Scrub
		{146, 134, 100, 255}, // Sand
		{84, 78, 66, 255},    // Gravel
	},
	Pattern: color.RGBA{60, 54, 44, 255},

	Player:        color.RGBA{0, 255, 100, 255}, // Bright green
	PlayerOutline: color.RGBA{0, 120, 50, 255},
	Bullet:        color.RGBA{255, 215, 0, 255}, // Gold
	BulletOutline: color.RGBA{255, 140, 0, 255},
}

// groundPatterns are cycled alongside the ground colors so neighbouring
// variants stay distinguishable.
var groundPatterns = []string{"", "dots", "grid", "diagonal", "cross"}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(size int, col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(size int, baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(size, baseColor)

	switch pattern {
	case "grid":
		step := max(size/8, 2)
		for i := 0; i < size; i += step {
			for x := 0; x < size; x++ {
				img.Set(x, i, patternColor)
				img.Set(i, x, patternColor)
			}
		}
	case "dots":
		quarter := size / 4
		threeQuarter := 3 * size / 4
		dots := []image.Point{{quarter, quarter}, {threeQuarter, quarter}, {quarter, threeQuarter}, {threeQuarter, threeQuarter}}
		dot := max(size/16, 1)
		for _, p := range dots {
			for dy := 0; dy < dot; dy++ {
				for dx := 0; dx < dot; dx++ {
					img.Set(p.X+dx, p.Y+dy, patternColor)
				}
			}
		}
	case "cross":
		mid := size / 2
		for i := 2; i < size-2; i++ {
			img.Set(mid, i, patternColor)
			img.Set(i, mid, patternColor)
		}
	case "diagonal":
		for i := 0; i < size; i++ {
			img.Set(i, i, patternColor)
			img.Set(i, size-1-i, patternColor)
		}
	}

	return img
}

// CreateCircle creates a circular sprite on a transparent background
func CreateCircle(size int, fillColor, outlineColor color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	center := size / 2
	radius := size/2 - 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outlineColor)
			}
		}
	}

	return img
}

// CreateGroundTile draws ground variant v. Colors and patterns cycle, and each
// full cycle is drawn a little darker.
func CreateGroundTile(size, v int) *image.RGBA {
	ground := ColorPalette.Ground
	base := ground[v%len(ground)]
	if cycle := v / len(ground); cycle > 0 {
		base = Darken(base, 1/(1+0.15*float64(cycle)))
	}
	return CreatePatternedTile(size, base, ColorPalette.Pattern, groundPatterns[v%len(groundPatterns)])
}

// CreateAtlas creates a sprite atlas from multiple tiles
func CreateAtlas(tiles []*image.RGBA, size, columns int) *image.RGBA {
	tileCount := len(tiles)
	rows := (tileCount + columns - 1) / columns

	atlas := image.NewRGBA(image.Rect(0, 0, columns*size, rows*size))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}

		x := (i % columns) * size
		y := (i / columns) * size

		destRect := image.Rect(x, y, x+size, y+size)
		draw.Draw(atlas, destRect, tile, image.Point{}, draw.Src)
	}

	return atlas
}

// BuildGroundAtlas draws the ground variants on the first row and the player
// and bullet sprites on the second, and describes them.
func BuildGroundAtlas(size, variants int) (*image.RGBA, *atlas.AtlasConfig, error) {
	if size < 4 {
		return nil, nil, fmt.Errorf("tile size %d too small", size)
	}
	if variants < 1 {
		return nil, nil, fmt.Errorf("need at least one ground variant, got %d", variants)
	}

	columns := max(variants, 2)
	tiles := make([]*image.RGBA, 2*columns)
	cfg := &atlas.AtlasConfig{
		Name:       "placeholder_ground",
		ImagePath:  ImageFile,
		TileWidth:  size,
		TileHeight: size,
	}

	for v := 0; v < variants; v++ {
		tiles[v] = CreateGroundTile(size, v)
		cfg.Tiles = append(cfg.Tiles, atlas.TileDefinition{
			Name:   fmt.Sprintf("ground_%d", v),
			AtlasX: v,
			Properties: map[string]interface{}{
				"kind":    atlas.KindGround,
				"variant": v,
			},
		})
	}

	tiles[columns] = CreateCircle(size, ColorPalette.Bullet, ColorPalette.BulletOutline)
	tiles[columns+1] = CreateCircle(size, ColorPalette.Player, ColorPalette.PlayerOutline)
	cfg.Tiles = append(cfg.Tiles,
		atlas.TileDefinition{Name: SpriteBullet, AtlasX: 0, AtlasY: 1, Properties: map[string]interface{}{"kind": atlas.KindSprite}},
		atlas.TileDefinition{Name: SpritePlayer, AtlasX: 1, AtlasY: 1, Properties: map[string]interface{}{"kind": atlas.KindSprite}},
	)

	return CreateAtlas(tiles, size, columns), cfg, nil
}

// Save writes tiles.png and tiles.json into dir and returns the config path.
func Save(dir string, size, variants int) (string, error) {
	img, cfg, err := BuildGroundAtlas(size, variants)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := SavePNG(img, filepath.Join(dir, ImageFile)); err != nil {
		return "", fmt.Errorf("failed to write atlas image: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", err
	}
	configPath := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write atlas config: %w", err)
	}
	return configPath, nil
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
