package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/vk/buildgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// envDefaults holds the environment-variable overrides for flag defaults.
// Flags always win over the environment.
type envDefaults struct {
	Workers       int           `env:"BUILDGRID_WORKERS" envDefault:"8"`
	TargetTimeout time.Duration `env:"BUILDGRID_TARGET_TIMEOUT" envDefault:"0"`
	StatusPort    int           `env:"BUILDGRID_STATUS_PORT" envDefault:"0"`
	LogFormat     string        `env:"BUILDGRID_LOG_FORMAT" envDefault:"text"`
	LogLevel      string        `env:"BUILDGRID_LOG_LEVEL" envDefault:"info"`
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var defaults envDefaults
	if err := env.Parse(&defaults); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid BUILDGRID_* environment: %v", err)}
	}

	flagSet := flag.NewFlagSet("buildgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
BuildGrid - A declarative build-graph dependency resolver and target executor.

Usage:
  buildgrid [options] [ROOT_PATH]

Arguments:
  ROOT_PATH
    Directory scanned recursively for *.build.hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	rootFlag := flagSet.String("root", "", "Path to the build root directory.")
	rFlag := flagSet.String("r", "", "Path to the build root directory (shorthand).")
	targetFlag := flagSet.String("target", "", "Build only this target address and its transitive dependencies.")
	workersFlag := flagSet.Int("workers", defaults.Workers, "Number of concurrent workers for the executor.")
	timeoutFlag := flagSet.Duration("target-timeout", defaults.TargetTimeout, "Per-target execution timeout. 0 disables it.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the execution schedule without running targets.")
	statusPortFlag := flagSet.Int("status-port", defaults.StatusPort, "Port for the HTTP health/metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *rootFlag != "" {
		path = *rootFlag
	} else if *rFlag != "" {
		path = *rFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Build root determined.", "path", path)

	if path == "" {
		slog.Debug("No build root provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		RootPath:      path,
		TargetAddr:    *targetFlag,
		Workers:       *workersFlag,
		TargetTimeout: *timeoutFlag,
		DryRun:        *dryRunFlag,
		StatusPort:    *statusPortFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
