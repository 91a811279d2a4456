// Command tileview drives the scrolling world in a terminal. Each cell is one
// tile; WASD moves, the arrow keys fire, p pauses, tab shows zone outlines and
// q or Escape quits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"chosenoffset.com/driftfield/internal/config"
	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/logging"
	"chosenoffset.com/driftfield/internal/placeholders"
	"chosenoffset.com/driftfield/internal/projectile"
	"chosenoffset.com/driftfield/internal/render"
	"chosenoffset.com/driftfield/internal/render/terminal"
	"chosenoffset.com/driftfield/internal/world"
)

var groundGlyphs = []rune{'.', ',', ':', '\'', ';', '`', '-'}

type viewer struct {
	surface  *terminal.Surface
	input    *terminal.Input
	world    *world.Controller
	launcher *projectile.Launcher
	dt       float64

	paused bool
	debug  bool
	hits   int

	log *zap.Logger
}

func newViewer(screen tcell.Screen, cfg *config.Config, speed float64, logger *zap.Logger) (*viewer, error) {
	surface := terminal.NewSurface(screen)
	w, h := surface.Size()

	wc := cfg.WorldController()
	wc.Viewport = geom.V(float64(w), float64(h))
	wc.PixelsPerUnit = 1
	wc.Speed = speed

	// One terminal cell per tile.
	cell := world.ProberFunc(func() (geom.Rect, error) {
		return geom.Rect{Max: geom.V(1, 1)}, nil
	})
	ctrl, err := world.NewController(wc, cell, logger)
	if err != nil {
		return nil, err
	}

	lc := cfg.Launcher()
	lc.Speed = 4 * speed
	lc.Radius = 0.4
	launcher, err := projectile.NewLauncher(lc, logger)
	if err != nil {
		return nil, err
	}

	return &viewer{
		surface:  surface,
		input:    terminal.NewInput(terminal.DefaultHoldTicks),
		world:    ctrl,
		launcher: launcher,
		dt:       cfg.Dt(),
		log:      logger.Named("tileview"),
	}, nil
}

func (v *viewer) update() {
	if v.input.IsKeyJustPressed(render.KeyP) {
		v.paused = !v.paused
	}
	if v.input.IsKeyJustPressed(render.KeyTab) {
		v.debug = !v.debug
	}
	defer v.input.EndTick()
	if v.paused {
		return
	}

	move := geom.V(v.input.Axis(render.AxisMoveX), v.input.Axis(render.AxisMoveY))
	if _, err := v.world.Step(move.Scale(-1), v.dt); err != nil {
		v.log.Error("world step", zap.Error(err))
	}

	aim := geom.V(v.input.Axis(render.AxisAimX), v.input.Axis(render.AxisAimY))
	v.launcher.Update(aim, geom.Vec2{}, v.dt)
	v.hits += len(v.launcher.Collide(v.world.ZoneRects()))
}

func (v *viewer) draw() {
	screen := v.surface.Screen()
	screen.Clear()

	palette := placeholders.ColorPalette.Ground
	for _, t := range v.world.Tiles() {
		c := palette[t.Variant%len(palette)]
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		v.surface.Plot(t.Position.X, t.Position.Y, groundGlyphs[t.Variant%len(groundGlyphs)], style)
	}

	if v.debug {
		zoneStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
		for _, r := range v.world.ZoneRects() {
			for x := r.Min.X + 0.5; x < r.Max.X; x++ {
				for y := r.Min.Y + 0.5; y < r.Max.Y; y++ {
					v.surface.Plot(x, y, '#', zoneStyle)
				}
			}
		}
	}

	bulletStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	for _, b := range v.launcher.Bullets() {
		v.surface.Plot(b.Position.X, b.Position.Y, '*', bulletStyle)
	}
	v.surface.Plot(0, 0, '@', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true))

	info := v.world.Info()
	scroll := v.world.Scroll()
	status := fmt.Sprintf("grid %dx%d  scroll %.1f,%.1f  frame %d  hits %d",
		info.Columns, info.Rows, scroll.X, scroll.Y, v.world.FrameNumber(), v.hits)
	if v.paused {
		status += "  [paused]"
	}
	v.surface.Status(status, tcell.StyleDefault.Reverse(true))
	screen.Show()
}

func (v *viewer) run(tps int) {
	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()

	screen := v.surface.Screen()
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			if !v.input.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.update()
			v.draw()
		}
	}
}

func main() {
	configPath := flag.String("config", "driftfield.toml", "settings file (.toml, .yaml or .json)")
	logPath := flag.String("log", "tileview.log", "log file; the terminal is busy drawing")
	speed := flag.Float64("speed", 8, "scroll speed in cells per second")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Logging.Output = *logPath

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Fatal("failed to create screen", zap.Error(err))
	}
	if err := screen.Init(); err != nil {
		logger.Fatal("failed to init screen", zap.Error(err))
	}

	v, err := newViewer(screen, cfg, *speed, logger)
	if err != nil {
		screen.Fini()
		logger.Fatal("failed to build world", zap.Error(err))
	}

	v.run(cfg.Display.TPS)
	screen.Fini()
}
