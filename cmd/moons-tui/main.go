package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plus3/moons/config"
	"github.com/plus3/moons/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	seed := flag.Uint64("seed", 0, "Random seed for the initial scene (0 picks one).")
	bodies := flag.Int("bodies", 0, "Override the number of moons.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *bodies > 0 {
		cfg.Bodies.Count = *bodies
	}

	session, err := sim.NewSession(cfg, *seed)
	if err != nil {
		log.Fatalf("Failed to start simulation: %v", err)
	}

	model := NewModel(session, float64(cfg.Window.Width), float64(cfg.Window.Height), cfg.TickRate)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		log.Fatalf("Terminal UI exited: %v", err)
	}
}
