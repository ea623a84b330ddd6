package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/moons/config"
	debugui_ebiten "github.com/plus3/moons/debugui/ebiten"
	"github.com/plus3/moons/render"
	"github.com/plus3/moons/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	seed := flag.Uint64("seed", 0, "Random seed for the initial scene (0 picks one).")
	watch := flag.Bool("watch", false, "Reload the config file when it changes.")
	debug := flag.Bool("debug", false, "Show the ImGui tuning and stats panels.")
	bodies := flag.Int("bodies", 0, "Override the number of moons.")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *bodies)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	session, err := sim.NewSession(cfg, *seed)
	if err != nil {
		log.Fatalf("Failed to start simulation: %v", err)
	}
	log.Printf("Simulating %d moons (seed %d)", session.Sim().BodyCount(), session.Seed())

	game := render.NewGame(session, cfg.Window.Width, cfg.Window.Height)
	game.Logf = log.Printf

	if *debug {
		game.Overlay = debugui_ebiten.NewOverlay(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, session)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetTPS(cfg.TickRate)

	if *watch && *configPath != "" {
		reloader, err := newReloader(*configPath, *bodies, session, game.Overlay)
		if err != nil {
			log.Fatalf("Failed to watch config: %v", err)
		}
		defer reloader.Close()
		game.BeforeUpdate = reloader.Poll
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}

func loadConfig(path string, bodies int) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if bodies > 0 {
		cfg.Bodies.Count = bodies
	}
	return cfg, nil
}
