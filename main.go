package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gookit/color"

	"guardpatrol/pkg/engine/ctxlog"
	"guardpatrol/pkg/engine/terminal"
	"guardpatrol/pkg/engine/world"
	"guardpatrol/pkg/game/cli"
	"guardpatrol/pkg/game/config"
	"guardpatrol/pkg/game/devtools"
	"guardpatrol/pkg/game/renderer"
	"guardpatrol/pkg/game/renderer/tui"
	"guardpatrol/pkg/game/search"
	"guardpatrol/pkg/game/state"
)

func main() {
	// Minimal logger until the configured one is built
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		code, msg := exitStatus(err)
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(code)
	}
}

// exitStatus maps a run error to a process exit code and message. An
// ExitError anywhere in the chain sets both; anything else exits 1.
func exitStatus(err error) (int, string) {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Message
	}
	return 1, err.Error()
}

// newLogger builds the slog logger described by cfg
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newRenderer picks terminal dimensions and color support for out
func newRenderer(cfg *config.Config, out io.Writer) renderer.Renderer {
	width, height := terminal.DefaultWidth, terminal.DefaultHeight
	isTTY := false
	if f, ok := out.(*os.File); ok {
		width, height = terminal.GetSize(f)
		isTTY = terminal.IsTerminal(f)
	}

	color.Enable = cfg.Color && isTTY

	return tui.New(out, cfg.Locale, width, height)
}

// run parses arguments, simulates the patrol and writes the report to out.
// Logs go to logOut.
func run(ctx context.Context, out, logOut io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(ctx, args, out)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := newLogger(cfg, logOut)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Configuration resolved.", "config", *cfg)

	grid, err := world.ParseFile(cfg.InputPath)
	if err != nil {
		return err
	}
	logger.Info("Map loaded.", "path", cfg.InputPath, "width", grid.Width(), "height", grid.Height(), "obstacles", grid.CountTiles(world.Obstacle))

	session := state.NewSession(grid)
	if err := session.Simulate(ctx, search.Options{Workers: cfg.Workers, Timeout: cfg.Timeout}); err != nil {
		return err
	}

	renderer.SetRenderer(newRenderer(cfg, out))
	renderer.Init()
	renderer.RenderReport(session)
	if cfg.ShowMap {
		renderer.RenderMap(session)
	}

	if cfg.DumpPath != "" {
		path, err := devtools.DumpToFile(session, cfg.DumpPath)
		if err != nil {
			return fmt.Errorf("writing dump: %w", err)
		}
		renderer.ShowMessage(renderer.FormatText("GT{DUMP_WRITTEN}") + " " + renderer.StyleText(path, renderer.StyleSubtle))
	}

	return nil
}
