package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/charge-sandbox/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	game := NewGame(cfg)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Sim.TPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
