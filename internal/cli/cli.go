package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/lazyflow/internal/app"
)

// ExitError carries the process exit code for a command-line failure.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

const usage = `lazyflow runs a pipeline of lazy detector-data nodes. Only nodes
that a primary node (a printer, an environment setter) depends on are
calculated.

Usage:
  lazyflow [options] PIPELINE
  lazyflow [options] -pipeline PIPELINE

PIPELINE is a .hcl or .yaml/.yml file, or a directory whose .hcl files are
read together as one pipeline.

Options:
`

var (
	logFormats = map[string]bool{"text": true, "json": true}
	// warning is accepted as a spelling of warn.
	logLevels = map[string]string{"debug": "debug", "info": "info", "warn": "warn", "warning": "warn", "error": "error"}
)

// Parse reads the command line into an app.Config. The boolean result is
// true when the caller should exit without running anything (help was
// requested or no pipeline was given). Bad input is reported as *ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("lazyflow", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	pipeline := flagSet.String("pipeline", "", "Pipeline file or directory.")
	pipelineShort := flagSet.String("p", "", "Shorthand for -pipeline.")
	logFormat := flagSet.String("log-format", "text", "Log encoding: text or json.")
	logLevel := flagSet.String("log-level", "info", "Minimum log level: debug, info, warn or error.")
	seed := flagSet.Uint64("seed", 0, "Seed of the random source handed to nodes.")
	workers := flagSet.Int("workers", 0, "Goroutines used by parallel reductions. 0 uses GOMAXPROCS.")
	libraryRoot := flagSet.String("library-root", "", "Directory node libraries may read auxiliary files from.")
	metrics := flagSet.Bool("metrics", false, "Print collected metrics in Prometheus text format after the run.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path, err := pipelinePath(*pipeline, *pipelineShort, flagSet.Args())
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	format := strings.ToLower(*logFormat)
	if !logFormats[format] {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown log format '%s', use text or json", *logFormat)}
	}
	level, ok := logLevels[strings.ToLower(*logLevel)]
	if !ok {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown log level '%s', use debug, info, warn or error", *logLevel)}
	}

	config, err := app.NewConfig(app.Config{
		PipelinePath: path,
		LibraryRoot:  *libraryRoot,
		LogFormat:    format,
		LogLevel:     level,
		Seed:         *seed,
		Workers:      *workers,
		Metrics:      *metrics,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Command line parsed.", "pipeline", config.PipelinePath, "seed", config.Seed, "workers", config.Workers)
	return config, false, nil
}

// pipelinePath picks the single pipeline location given by -pipeline, -p or
// the first positional argument. Giving two different locations is an error.
func pipelinePath(long, short string, positional []string) (string, error) {
	var candidates []string
	for _, p := range []string{long, short} {
		if p != "" {
			candidates = append(candidates, p)
		}
	}
	if len(positional) > 1 {
		return "", fmt.Errorf("expected one pipeline path, got %d positional arguments", len(positional))
	}
	candidates = append(candidates, positional...)

	if len(candidates) == 0 {
		return "", nil
	}
	for _, c := range candidates[1:] {
		if c != candidates[0] {
			return "", fmt.Errorf("conflicting pipeline paths '%s' and '%s'", candidates[0], c)
		}
	}
	return candidates[0], nil
}
