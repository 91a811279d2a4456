// Package rendertest provides in-memory render fakes for tests.
package rendertest

import (
	"fmt"
	"image"
	"image/color"

	"chosenoffset.com/driftfield/internal/render"
)

// Image is a render.Image that records what was drawn on it.
type Image struct {
	Rect   image.Rectangle
	Parent *Image
	Draws  []Draw
	Filled color.Color
}

// Draw is one DrawImage call.
type Draw struct {
	Src  *Image
	GeoM *GeoM
}

func NewImage(w, h int) *Image {
	return &Image{Rect: image.Rect(0, 0, w, h)}
}

func (i *Image) Bounds() image.Rectangle { return i.Rect }

func (i *Image) Size() (int, int) { return i.Rect.Dx(), i.Rect.Dy() }

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Rect: r.Intersect(i.Rect), Parent: i}
}

func (i *Image) Fill(clr color.Color) { i.Filled = clr }

func (i *Image) Clear() {
	i.Filled = nil
	i.Draws = nil
}

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	d := Draw{Src: src.(*Image)}
	if opts != nil && opts.GeoM != nil {
		g := *opts.GeoM.(*GeoM)
		d.GeoM = &g
	}
	i.Draws = append(i.Draws, d)
}

// GeoM tracks translation and scale, which is all the game uses.
type GeoM struct {
	TX, TY float64
	SX, SY float64
}

func NewGeoM() render.GeoM {
	return &GeoM{SX: 1, SY: 1}
}

func (g *GeoM) Translate(tx, ty float64) {
	g.TX += tx
	g.TY += ty
}

func (g *GeoM) Scale(sx, sy float64) {
	g.SX *= sx
	g.SY *= sy
	g.TX *= sx
	g.TY *= sy
}

func (g *GeoM) Reset() { *g = GeoM{SX: 1, SY: 1} }

// Renderer counts shape and text calls.
type Renderer struct {
	Circles int
	Rects   int
	Strokes int
	Texts   []string
}

func (r *Renderer) NewImage(w, h int) render.Image { return NewImage(w, h) }

func (r *Renderer) FillCircle(render.Image, float32, float32, float32, color.Color) { r.Circles++ }

func (r *Renderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) { r.Rects++ }

func (r *Renderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.Strokes++
}

func (r *Renderer) DrawText(_ render.Image, text string, _, _ int, _ color.Color, _ float64) {
	r.Texts = append(r.Texts, text)
}

// Input is a scripted render.InputManager.
type Input struct {
	Held    map[render.Key]bool
	Pressed map[render.Key]bool
	Axes    map[render.Axis]float64
}

func NewInput() *Input {
	return &Input{
		Held:    make(map[render.Key]bool),
		Pressed: make(map[render.Key]bool),
		Axes:    make(map[render.Axis]float64),
	}
}

func (in *Input) IsKeyPressed(k render.Key) bool { return in.Held[k] }

func (in *Input) IsKeyJustPressed(k render.Key) bool { return in.Pressed[k] }

func (in *Input) Axis(a render.Axis) float64 { return in.Axes[a] }

// Loader serves images registered by path.
type Loader struct {
	Images map[string]*Image
}

func (l *Loader) LoadImage(path string) (render.Image, error) {
	img, ok := l.Images[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return img, nil
}

func (l *Loader) NewImageFromImage(img image.Image) render.Image {
	return &Image{Rect: img.Bounds()}
}
