// Package cli parses command-line arguments into a config.Config and maps
// usage errors onto process exit codes.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"guardpatrol/pkg/game/config"
)

// ExitError is an error that carries a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the resolved config,
// a boolean telling the caller to exit cleanly (help was printed), or an
// *ExitError. Explicit flags win over the config file, which wins over
// defaults.
func Parse(ctx context.Context, args []string, output io.Writer) (*config.Config, bool, error) {
	flagSet := flag.NewFlagSet("guardpatrol", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
guardpatrol - simulate a guard patrol and count loop-inducing obstacles.

Usage:
  guardpatrol [options] [MAP_PATH]

Arguments:
  MAP_PATH
    Path to a map file using '.', '#' and a single '^'.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := config.Default()

	inputFlag := flagSet.String("input", "", "Path to the map file.")
	iFlag := flagSet.String("i", "", "Path to the map file (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an HCL config file.")
	workersFlag := flagSet.Int("workers", defaults.Workers, "Number of concurrent obstacle trials. 1 runs them in place on one grid.")
	timeoutFlag := flagSet.Duration("timeout", defaults.Timeout, "Wall-clock limit for the obstacle search. 0 disables it.")
	colorFlag := flagSet.Bool("color", defaults.Color, "Colorize the report when writing to a terminal.")
	localeFlag := flagSet.String("locale", defaults.Locale, "Report language: 'en' or 'de'.")
	dumpFlag := flagSet.String("dump", "", "Write a debug map dump to this path.")
	showMapFlag := flagSet.Bool("show-map", defaults.ShowMap, "Print the map with the patrol path overlaid.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg := defaults
	if *configFlag != "" {
		loaded, err := config.LoadFile(ctx, *configFlag, cfg)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	switch {
	case *inputFlag != "":
		cfg.InputPath = *inputFlag
	case *iFlag != "":
		cfg.InputPath = *iFlag
	case flagSet.NArg() > 0:
		cfg.InputPath = flagSet.Arg(0)
	}
	if set["workers"] {
		cfg.Workers = *workersFlag
	}
	if set["timeout"] {
		cfg.Timeout = *timeoutFlag
	}
	if set["color"] {
		cfg.Color = *colorFlag
	}
	if set["locale"] {
		cfg.Locale = *localeFlag
	}
	if set["dump"] {
		cfg.DumpPath = *dumpFlag
	}
	if set["show-map"] {
		cfg.ShowMap = *showMapFlag
	}
	if set["log-level"] {
		cfg.LogLevel = strings.ToLower(*logLevelFlag)
	}
	if set["log-format"] {
		cfg.LogFormat = strings.ToLower(*logFormatFlag)
	}

	if cfg.InputPath == "" {
		slog.Debug("No map path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return &cfg, false, nil
}
