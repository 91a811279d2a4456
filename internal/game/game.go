// Package game runs the scrolling world and the player's weapon inside a
// render.Engine.
package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chosenoffset.com/driftfield/internal/config"
	"chosenoffset.com/driftfield/internal/core/geom"
	"chosenoffset.com/driftfield/internal/placeholders"
	"chosenoffset.com/driftfield/internal/projectile"
	"chosenoffset.com/driftfield/internal/render"
	"chosenoffset.com/driftfield/internal/world"
	"chosenoffset.com/driftfield/internal/world/atlas"
)

// ErrQuit ends the game loop cleanly.
var ErrQuit = render.ErrQuit

const messageSeconds = 2.0

// Deps are the engine services the game draws and reads input through.
type Deps struct {
	Renderer render.Renderer
	Input    render.InputManager
	Loader   render.ResourceLoader
}

// Game holds all game state and logic.
type Game struct {
	cfg *config.Config
	dt  float64

	Renderer render.Renderer
	InputMgr render.InputManager

	World    *world.Controller
	Launcher *projectile.Launcher
	Atlas    *atlas.Atlas

	PlayerSpriteImg render.Image
	BulletSpriteImg render.Image

	// UI state
	Messages []Message
	Paused   bool
	Debug    bool
	Hits     int

	log *zap.Logger
}

// New loads the atlas, builds the world and the launcher. With no atlas
// configured it draws placeholder sprites in memory.
func New(cfg *config.Config, deps Deps, logger *zap.Logger) (*Game, error) {
	if deps.Renderer == nil || deps.Input == nil || deps.Loader == nil {
		return nil, errors.New("game: renderer, input and loader are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a, err := loadAtlas(cfg, deps.Loader)
	if err != nil {
		return nil, err
	}

	w, err := world.NewController(cfg.WorldController(), a, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	l, err := projectile.NewLauncher(cfg.Launcher(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build launcher: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		dt:       cfg.Dt(),
		Renderer: deps.Renderer,
		InputMgr: deps.Input,
		World:    w,
		Launcher: l,
		Atlas:    a,
		log:      logger.Named("game"),
	}

	if g.PlayerSpriteImg, err = a.GetTileSubImageByName(placeholders.SpritePlayer); err != nil {
		g.log.Warn("player sprite missing, drawing a circle", zap.Error(err))
	}
	if g.BulletSpriteImg, err = a.GetTileSubImageByName(placeholders.SpriteBullet); err != nil {
		g.log.Warn("bullet sprite missing, drawing circles", zap.Error(err))
	}

	if a.GroundCount() < cfg.World.Variants {
		g.log.Warn("atlas has fewer ground tiles than terrain variants; variants will repeat",
			zap.Int("ground", a.GroundCount()),
			zap.Int("variants", cfg.World.Variants),
		)
	}

	return g, nil
}

func loadAtlas(cfg *config.Config, loader render.ResourceLoader) (*atlas.Atlas, error) {
	if cfg.World.Atlas != "" {
		a, err := atlas.LoadAtlas(cfg.World.Atlas, loader)
		if err != nil {
			return nil, fmt.Errorf("failed to load atlas: %w", err)
		}
		return a, nil
	}

	img, acfg, err := placeholders.BuildGroundAtlas(cfg.World.TilePixels, cfg.World.Variants)
	if err != nil {
		return nil, fmt.Errorf("failed to draw placeholder atlas: %w", err)
	}
	return atlas.New(acfg, loader.NewImageFromImage(img))
}

// Update handles game logic updates. Escape quits, P pauses and Tab toggles
// the debug overlay.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyP) {
		g.Paused = !g.Paused
		if g.Paused {
			g.ShowMessage("Paused")
		} else {
			g.ShowMessage("Resumed")
		}
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyTab) {
		g.Debug = !g.Debug
	}

	g.updateMessages(g.dt)
	if g.Paused {
		return nil
	}

	// The player stays put and the ground slides the other way.
	move := geom.V(g.InputMgr.Axis(render.AxisMoveX), g.InputMgr.Axis(render.AxisMoveY))
	if _, err := g.World.Step(move.Scale(-1), g.dt); err != nil {
		g.log.Error("world step", zap.Error(err), zap.Uint64("frame", g.World.FrameNumber()))
	}

	aim := geom.V(g.InputMgr.Axis(render.AxisAimX), g.InputMgr.Axis(render.AxisAimY))
	g.Launcher.Update(aim, geom.Vec2{}, g.dt)
	g.Hits += len(g.Launcher.Collide(g.World.ZoneRects()))

	return nil
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Display.Width, g.cfg.Display.Height
}

func (g *Game) updateMessages(dt float64) {
	active := g.Messages[:0]
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: messageSeconds,
		MaxTime:  messageSeconds,
	})
	g.log.Debug("message", zap.String("text", text))
}
