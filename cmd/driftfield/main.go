package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"chosenoffset.com/driftfield/internal/config"
	"chosenoffset.com/driftfield/internal/game"
	"chosenoffset.com/driftfield/internal/logging"
	ebitenrender "chosenoffset.com/driftfield/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "driftfield.toml", "settings file (.toml, .yaml or .json)")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	g, err := game.New(cfg, game.Deps{Renderer: renderer, Input: inputMgr, Loader: loader}, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}

	// Set up the window
	engine.SetWindowSize(cfg.Display.WindowWidth, cfg.Display.WindowHeight)
	engine.SetWindowTitle(cfg.Display.Title)
	engine.SetWindowResizable(true)
	engine.SetFullscreen(cfg.Display.Fullscreen)
	engine.SetTPS(cfg.Display.TPS)

	logger.Info("starting", zap.String("config", *configPath))
	if err := engine.RunGame(g); err != nil {
		logger.Error("game loop", zap.Error(err))
		os.Exit(1)
	}
}
