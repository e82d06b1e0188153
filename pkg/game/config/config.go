// Package config holds the run configuration and loads it from HCL files.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"guardpatrol/pkg/engine/ctxlog"
)

// Config is the complete set of settings for one run
type Config struct {
	InputPath string
	Workers   int
	Timeout   time.Duration
	Color     bool
	Locale    string
	DumpPath  string
	ShowMap   bool
	LogLevel  string
	LogFormat string
}

// Default returns the settings used when neither flags nor a file set a value
func Default() Config {
	return Config{
		Workers:   1,
		Color:     true,
		Locale:    "en",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Validate checks that every field holds a usable value
func (c Config) Validate() error {
	var errs []error

	if c.InputPath == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %v", c.Timeout))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", c.LogFormat))
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel maps a level name onto a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", name)
	}
}

// fileRoot mirrors the attributes accepted in a config file
type fileRoot struct {
	Input     *string `hcl:"input,optional"`
	Workers   *int    `hcl:"workers,optional"`
	Timeout   *string `hcl:"timeout,optional"`
	Color     *bool   `hcl:"color,optional"`
	Locale    *string `hcl:"locale,optional"`
	Dump      *string `hcl:"dump,optional"`
	ShowMap   *bool   `hcl:"show_map,optional"`
	LogLevel  *string `hcl:"log_level,optional"`
	LogFormat *string `hcl:"log_format,optional"`
}

// evalContext exposes values usable in expressions, e.g. `workers = cpus`
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cpus": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
	}
}

// LoadFile reads an HCL config file and applies its attributes over base
func LoadFile(ctx context.Context, path string, base Config) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config: %w", err)
	}
	return Load(ctx, src, path, base)
}

// Load decodes HCL source and applies its attributes over base. Attributes
// absent from the source leave the base value untouched.
func Load(ctx context.Context, src []byte, filename string, base Config) (Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading config.", "file", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return base, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	cfg := base
	if root.Input != nil {
		cfg.InputPath = *root.Input
	}
	if root.Workers != nil {
		cfg.Workers = *root.Workers
	}
	if root.Timeout != nil {
		d, err := time.ParseDuration(*root.Timeout)
		if err != nil {
			return base, fmt.Errorf("config %s: invalid timeout: %w", filename, err)
		}
		cfg.Timeout = d
	}
	if root.Color != nil {
		cfg.Color = *root.Color
	}
	if root.Locale != nil {
		cfg.Locale = *root.Locale
	}
	if root.Dump != nil {
		cfg.DumpPath = *root.Dump
	}
	if root.ShowMap != nil {
		cfg.ShowMap = *root.ShowMap
	}
	if root.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(*root.LogLevel)
	}
	if root.LogFormat != nil {
		cfg.LogFormat = strings.ToLower(*root.LogFormat)
	}

	logger.Debug("Config loaded.", "config", cfg)
	return cfg, nil
}
