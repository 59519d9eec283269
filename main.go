package main

import (
	"context"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"planewar/internal/assets"
	"planewar/internal/config"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.NewLogger(os.Stderr)

	// 2. Window Setup
	ebiten.SetWindowSize(
		int(float64(cfg.LogicalWidth)*cfg.WindowScale),
		int(float64(cfg.LogicalHeight)*cfg.WindowScale),
	)
	ebiten.SetWindowTitle(cfg.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 3. Initialize Game
	loader := assets.NewLoader(assets.NewFetcher(cfg.AssetBase),
		assets.WithTimeout(cfg.LoadTimeout),
		assets.WithLogger(logger),
	)
	game, err := NewGame(context.Background(), cfg, loader, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer game.Close()

	// 4. Run Loop
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err)
	}
}
