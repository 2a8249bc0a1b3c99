// Command rtscam opens a window and flies an RTS camera rig over the ground plane.
//
// WASD or the arrow keys pan, the screen edges pan, the middle button drags the
// ground, the right button rotates and the wheel zooms. The clear colour tracks
// the camera height.
package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-rts/config"
	"github.com/Carmen-Shannon/oxy-rts/engine"
	"github.com/Carmen-Shannon/oxy-rts/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rts/engine/window"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		log.Fatalf("failed to open window: %v", err)
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win)
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}
	defer r.Release()

	a, err := newApp(cfg, win, r, logger)
	if err != nil {
		log.Fatalf("failed to build rig: %v", err)
	}
	defer a.Close()

	if *watch && *configPath != "" {
		watcher, err := config.NewWatcher(*configPath)
		if err != nil {
			log.Fatalf("failed to watch config: %v", err)
		}
		defer watcher.Close()

		// rebinding the window callbacks has to happen on the window thread
		win.SetUpdateCallback(func() {
			select {
			case next, ok := <-watcher.Configs:
				if ok {
					a.Reload(next)
				}
			case err, ok := <-watcher.Errors:
				if ok {
					logger.Warn("config reload failed", "error", err)
				}
			default:
			}
		})
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithLogger(logger),
		engine.WithSystem(0, a),
	)
	eng.SetRenderCallback(a.Render)

	logger.Info("rig ready",
		"smoothing", cfg.Rig.Smoothing,
		"height", a.rc.Height(),
		"viewport", []int{win.Width(), win.Height()},
	)
	eng.Run()
}
