// Command rigview shows the camera rig from above in an ebiten window.
//
// The rig pans, zooms and rotates with the usual bindings. Tab hands the
// movement keys to a walker body simulated by the physics world.
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-rts/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	scale := flag.Float64("scale", 8, "pixels per world unit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	game, err := NewGame(cfg, float32(*scale), logger)
	if err != nil {
		log.Fatalf("failed to build viewer: %v", err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title + " rigview")
	ebiten.SetTPS(cfg.Engine.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
