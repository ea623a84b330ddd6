package main

import (
	"log"

	"github.com/plus3/moons/config"
	"github.com/plus3/moons/render"
	"github.com/plus3/moons/sim"
)

// reloader applies config edits on the game goroutine, between frames.
type reloader struct {
	watcher *config.Watcher
	bodies  int
	session *sim.Session
	overlay render.Overlay
}

func newReloader(path string, bodies int, session *sim.Session, overlay render.Overlay) (*reloader, error) {
	w, err := config.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Watching %s for changes", path)
	return &reloader{watcher: w, bodies: bodies, session: session, overlay: overlay}, nil
}

// Poll drains pending watcher events without blocking
func (r *reloader) Poll() {
	for {
		select {
		case path, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.reload(path)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		default:
			return
		}
	}
}

func (r *reloader) reload(path string) {
	cfg, err := loadConfig(path, r.bodies)
	if err != nil {
		log.Printf("Config reload rejected, keeping current settings: %v", err)
		return
	}
	if err := r.session.Apply(cfg); err != nil {
		log.Printf("Config reload rejected, keeping current settings: %v", err)
		return
	}
	if r.overlay != nil {
		r.overlay.Resync()
	}
	law := cfg.Force
	log.Printf("Config reloaded: G=%v clamp=[%v, %v]; body settings apply on reset (R)", law.G, law.MinDistSq, law.MaxDistSq)
}

func (r *reloader) Close() error {
	return r.watcher.Close()
}
