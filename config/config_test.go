package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stewi1014/glbacteria/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, game.Sphere, cfg.Game(game.Sphere).Variant)
	assert.Equal(t, 500*time.Millisecond, cfg.StatusInterval)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glbacteria.yaml")
	writeConfig(t, path, `
program: sphere
seed: 42
status_interval: 250ms
window:
  width: 800
flat:
  count: 5
  phase_threshold: 3.5
sphere:
  growth_rate: 0.2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sphere", cfg.Program)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.StatusInterval)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height, "unset keys keep their defaults")

	assert.Equal(t, game.Flat, cfg.Flat.Variant)
	assert.Equal(t, 5, cfg.Flat.Count)
	assert.Equal(t, 3.5, cfg.Flat.PhaseThreshold)
	assert.Equal(t, float32(0.05), cfg.Flat.GrowthRate)

	assert.Equal(t, game.Sphere, cfg.Sphere.Variant)
	assert.Equal(t, float32(0.2), cfg.Sphere.GrowthRate)
	assert.Equal(t, 10, cfg.Sphere.Count)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		writeConfig(t, path, "window: [\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	cases := map[string]string{
		"count":    "flat:\n  count: 40\n",
		"backend":  "window:\n  backend: sdl\n",
		"program":  "program: mandelbrot\n",
		"interval": "status_interval: 0s\n",
		"sphere":   "sphere:\n  radius_threshold: -1\n",
		"nan rate": "sphere:\n  growth_rate: .nan\n",
		"inf":      "flat:\n  phase_threshold: .inf\n",
		"spawn":    "flat:\n  spawn_radius: -3\n",
		"square":   "square:\n  growth_rate: .nan\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			writeConfig(t, path, body)
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "/etc/glbacteria.yaml")
	assert.Equal(t, "/etc/glbacteria.yaml", Path(""))
	assert.Equal(t, "mine.yaml", Path("mine.yaml"))
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Flat.Count = 7

	data, err := cfg.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glbacteria.yaml")
	writeConfig(t, path, "flat:\n  count: 3\n")

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(cfg Config) { changes <- cfg })
	}()

	writeConfig(t, path, "flat:\n  count: 40\n") // invalid, skipped
	time.Sleep(3 * debounce)
	writeConfig(t, path, "flat:\n  count: 4\n")

	select {
	case cfg := <-changes:
		assert.Equal(t, 4, cfg.Flat.Count)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	cancel()
	require.NoError(t, <-done)
}
