package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/moons/config"
	"github.com/plus3/moons/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 15, cfg.Bodies.Count)
	assert.Equal(t, config.Point{X: 400, Y: 400}, cfg.Attractor.Position)
	assert.Equal(t, 200.0, cfg.Attractor.Mass)
	assert.Equal(t, physics.ForceLaw{G: 8, MinDistSq: 100, MaxDistSq: 1000}, cfg.Force)
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := config.Parse([]byte(`
bodies:
  count: 40
force:
  g: 12
`))
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Bodies.Count)
	assert.Equal(t, 12.0, cfg.Force.G)
	assert.Equal(t, 100.0, cfg.Force.MinDistSq)
	assert.Equal(t, 1000.0, cfg.Force.MaxDistSq)
	assert.Equal(t, config.Range{Min: 20, Max: 40}, cfg.Bodies.Mass)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero bodies", "bodies: {count: 0}"},
		{"negative mass", "bodies: {mass: {min: -1, max: 10}}"},
		{"mass range reversed", "bodies: {mass: {min: 30, max: 10}}"},
		{"speed range reversed", "bodies: {speed: {min: 3, max: 1}}"},
		{"spawn box inverted", "bodies: {spawn_min: {x: 900, y: 0}}"},
		{"attractor mass", "attractor: {mass: 0}"},
		{"clamp misordered", "force: {min_dist_sq: 1000, max_dist_sq: 100}"},
		{"clamp equal", "force: {min_dist_sq: 100, max_dist_sq: 100}"},
		{"tick rate", "tick_rate: 0"},
		{"window", "window: {width: 0}"},
		{"nan spawn bound", "bodies: {spawn_max: {x: .nan, y: 800}}"},
		{"infinite spawn bound", "bodies: {spawn_min: {x: -.inf, y: 0}}"},
		{"infinite speed", "bodies: {speed: {min: 1, max: .inf}}"},
		{"nan speed", "bodies: {speed: {min: .nan, max: 5}}"},
		{"infinite mass", "bodies: {mass: {min: 20, max: .inf}}"},
		{"infinite attractor position", "attractor: {position: {x: .inf, y: 400}}"},
		{"nan attractor position", "attractor: {position: {x: 400, y: .nan}}"},
		{"infinite attractor mass", "attractor: {mass: .inf}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestParseForceErrorKeepsCause(t *testing.T) {
	_, err := config.Parse([]byte("force: {min_dist_sq: 1000, max_dist_sq: 100}"))
	assert.ErrorIs(t, err, physics.ErrInvalidForceLaw)
}

func TestParseReportsEveryProblem(t *testing.T) {
	_, err := config.Parse([]byte("bodies: {count: -3}\nattractor: {mass: -1}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bodies.count")
	assert.Contains(t, err.Error(), "attractor.mass")
}

func TestParseNamesNonFiniteOption(t *testing.T) {
	_, err := config.Parse([]byte("bodies: {spawn_max: {x: .nan, y: 800}}"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bodies.spawn_max.x must be finite")
}

func TestParseMalformed(t *testing.T) {
	_, err := config.Parse([]byte("bodies: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moons.yaml")
	require.NoError(t, os.WriteFile(path, []byte("attractor: {position: {x: 10, y: 20}}"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, physics.NewVec2(10, 20), cfg.Attractor.Position.Vec())

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moons.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 60"), 0o644))

	w, err := config.NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 30"), 0o644))

	select {
	case got := <-w.Events:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for config write")
	}
}

func TestWatcherReportsBurstOnceAfterLastWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moons.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 60"), 0o644))

	w, err := config.NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	// an editor that truncates first and writes in pieces
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	for _, part := range []string{"tick_", "rate: ", "30"} {
		_, err := f.WriteString(part)
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	select {
	case <-w.Events:
		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.TickRate)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for config write")
	}

	select {
	case got := <-w.Events:
		t.Fatalf("burst reported twice: %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moons.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := config.NewWatcher(path)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}
