package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesAttributes(t *testing.T) {
	src := []byte(`
input      = "map.txt"
workers    = 3
timeout    = "2s"
color      = false
locale     = "de"
dump       = "dump.txt"
show_map   = true
log_level  = "DEBUG"
log_format = "json"
`)

	cfg, err := Load(context.Background(), src, "patrol.hcl", Default())
	require.NoError(t, err)

	require.Equal(t, Config{
		InputPath: "map.txt",
		Workers:   3,
		Timeout:   2 * time.Second,
		Color:     false,
		Locale:    "de",
		DumpPath:  "dump.txt",
		ShowMap:   true,
		LogLevel:  "debug",
		LogFormat: "json",
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_KeepsBaseForMissingAttributes(t *testing.T) {
	base := Default()
	base.InputPath = "from-flags.txt"

	cfg, err := Load(context.Background(), []byte(`workers = 2`), "patrol.hcl", base)
	require.NoError(t, err)
	require.Equal(t, "from-flags.txt", cfg.InputPath)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, base.Locale, cfg.Locale)
}

func TestLoad_CPUsVariable(t *testing.T) {
	cfg, err := Load(context.Background(), []byte(`workers = cpus`), "patrol.hcl", Default())
	require.NoError(t, err)
	require.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `input = `},
		{"unknown attribute", `speed = 3`},
		{"wrong type", `workers = "many"`},
		{"bad duration", `timeout = "soon"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), []byte(tt.src), "patrol.hcl", Default())
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patrol.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`input = "x.txt"`), 0o644))

	cfg, err := LoadFile(context.Background(), path, Default())
	require.NoError(t, err)
	require.Equal(t, "x.txt", cfg.InputPath)

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"), Default())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate(), "missing input should fail")

	cfg.InputPath = "map.txt"
	require.NoError(t, cfg.Validate())

	cfg.LogFormat = "xml"
	cfg.Workers = -1
	require.Error(t, cfg.Validate())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}
