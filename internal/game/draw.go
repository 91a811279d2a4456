package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/render"
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	g.drawGround(screen)
	g.drawBullets(screen)
	g.drawPlayer(screen)

	if g.Debug {
		g.drawZones(screen)
		g.drawStats(screen)
	}
	g.drawUI(screen)
}

// toScreen maps a world position to screen pixels. World Y points up, screen
// Y points down, and the origin sits at the screen center.
func (g *Game) toScreen(p geom.Vec2) (float64, float64) {
	ppu := g.cfg.Display.PixelsPerUnit
	return float64(g.cfg.Display.Width)/2 + p.X*ppu, float64(g.cfg.Display.Height)/2 - p.Y*ppu
}

func (g *Game) drawSprite(screen, img render.Image, center geom.Vec2, sizePx float64) {
	w, h := img.Size()
	x, y := g.toScreen(center)

	opts := &render.DrawImageOptions{}
	opts.GeoM = render.NewGeoM()
	opts.GeoM.Scale(sizePx/float64(w), sizePx/float64(h))
	opts.GeoM.Translate(x-sizePx/2, y-sizePx/2)
	screen.DrawImage(img, opts)
}

func (g *Game) drawGround(screen render.Image) {
	ts := g.World.Info().TileSize
	ppu := g.cfg.Display.PixelsPerUnit
	for _, t := range g.World.Tiles() {
		img, ok := g.Atlas.Ground(t.Variant)
		if !ok {
			continue
		}
		g.drawSprite(screen, img, t.Position, ts.X*ppu)
	}
}

func (g *Game) drawBullets(screen render.Image) {
	ppu := g.cfg.Display.PixelsPerUnit
	for _, b := range g.Launcher.Bullets() {
		if !b.Enabled() {
			continue
		}
		if g.BulletSpriteImg != nil {
			g.drawSprite(screen, g.BulletSpriteImg, b.Position, 2*b.Radius*ppu)
			continue
		}
		x, y := g.toScreen(b.Position)
		g.Renderer.FillCircle(screen, float32(x), float32(y), float32(b.Radius*ppu), color.RGBA{255, 215, 0, 255})
	}
}

func (g *Game) drawPlayer(screen render.Image) {
	size := g.World.Info().TileSize.X * g.cfg.Display.PixelsPerUnit
	if g.PlayerSpriteImg != nil {
		g.drawSprite(screen, g.PlayerSpriteImg, geom.Vec2{}, size)
		return
	}
	x, y := g.toScreen(geom.Vec2{})
	g.Renderer.FillCircle(screen, float32(x), float32(y), float32(size/2), color.RGBA{0, 255, 100, 255})
}

func (g *Game) drawZones(screen render.Image) {
	for _, r := range g.World.ZoneRects() {
		// Rect.Max.Y is the top edge on screen.
		x, y := g.toScreen(geom.V(r.Min.X, r.Max.Y))
		size := r.Size().Scale(g.cfg.Display.PixelsPerUnit)
		g.Renderer.StrokeRect(screen, float32(x), float32(y), float32(size.X), float32(size.Y), 2, zoneColor)
	}
}

func (g *Game) drawStats(screen render.Image) {
	info := g.World.Info()
	scroll := g.World.Scroll()
	tiles := g.World.PoolStats()
	bullets := g.Launcher.Stats()

	lines := []string{
		fmt.Sprintf("frame %d  grid %dx%d", g.World.FrameNumber(), info.Columns, info.Rows),
		fmt.Sprintf("scroll %.2f, %.2f", scroll.X, scroll.Y),
		fmt.Sprintf("tiles %d/%d  bullets %d/%d  hits %d",
			tiles.Acquired, tiles.Created, bullets.Acquired, bullets.Created, g.Hits),
	}
	for i, line := range lines {
		g.Renderer.DrawText(screen, line, 10, 10+i*16, textColor, 1.0)
	}
}

func (g *Game) drawUI(screen render.Image) {
	y := g.cfg.Display.Height - 30
	for i := len(g.Messages) - 1; i >= 0; i-- {
		msg := g.Messages[i]
		alpha := uint8(255 * msg.TimeLeft / msg.MaxTime)
		g.Renderer.DrawText(screen, msg.Text, 20, y, color.RGBA{255, 255, 255, alpha}, 1.0)
		y -= 20
	}
}
