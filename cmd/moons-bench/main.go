package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/plus3/moons/config"
	"github.com/plus3/moons/sim"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the bench should run for.")
	maxTicks := flag.Int("ticks", 0, "Stop after this many ticks (0 runs for the full duration).")
	bodies := flag.Int("bodies", 10000, "The number of moons to spawn.")
	configPath := flag.String("config", "", "Optional YAML config; -bodies overrides its body count.")
	seed := flag.Uint64("seed", 1, "Random seed for the initial scene (0 picks one).")
	sweep := flag.Bool("sweep", true, "Move the attractor around the scene center every tick.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	cfg.Bodies.Count = *bodies

	log.Println("Starting moons bench...")

	rng, usedSeed := sim.NewRand(*seed)
	log.Printf("Spawning %d moons (seed %d)...\n", cfg.Bodies.Count, usedSeed)
	simulation, err := sim.New(cfg, rng)
	if err != nil {
		log.Fatalf("Failed to build simulation: %v", err)
	}
	log.Println("Spawn complete.")

	report := &Report{
		Duration:       *duration,
		MaxTicks:       *maxTicks,
		Bodies:         simulation.BodyCount(),
		Seed:           usedSeed,
		Law:            simulation.ForceLaw(),
		GCPauseMetrics: *gcPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0, 4096),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	center := cfg.Attractor.Position
	startTime := time.Now()
	var totalTicks int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if *maxTicks > 0 && totalTicks >= int64(*maxTicks) {
				break Loop
			}
			if *sweep {
				angle := float64(totalTicks) * 0.02
				simulation.MoveAttractor(center.X+200*math.Cos(angle), center.Y+200*math.Sin(angle))
			}

			tickStart := time.Now()
			simulation.Tick(1.0 / float64(cfg.TickRate))
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
			totalTicks++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = totalTicks
	report.TickTime.Finalize()
	report.KineticEnergy = simulation.Snapshot().KineticEnergy
	report.Systems = simulation.Stats().Systems
	report.Storage = simulation.Storage().CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Moons Bench Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Bench complete.")
}
