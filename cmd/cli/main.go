package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/lazyflow/internal/app"
	"github.com/specialistvlad/lazyflow/internal/cli"
	"github.com/specialistvlad/lazyflow/internal/config"
	"github.com/specialistvlad/lazyflow/internal/hcl"
	"github.com/specialistvlad/lazyflow/internal/yamlconfig"
)

// main is the entrypoint for the lazyflow application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical config errors, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lazyflowApp := app.NewApp(outW, appConfig, loaderFor(appConfig.PipelinePath))
	return lazyflowApp.Run(ctx)
}

// loaderFor picks the YAML loader for .yaml/.yml files and HCL otherwise.
func loaderFor(path string) config.Loader {
	if yamlconfig.IsPipelineFile(path) {
		return yamlconfig.NewLoader()
	}
	return hcl.NewLoader()
}
