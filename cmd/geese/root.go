package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/geese/cmd/geese/opts"
	"github.com/walteh/geese/cmd/geese/ui"
	"github.com/walteh/geese/pkg/geesefile"
	"github.com/walteh/geese/pkg/oploader"
	"github.com/walteh/geese/pkg/ops"
	"github.com/walteh/geese/pkg/pipe"
	"github.com/walteh/geese/pkg/resolve"
)

var (
	// Flags
	geeseFilePath string
	opsDir        string
	workDir       string
	parallel      int
	debug         bool
)

// newRootOpts creates a new rootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	// Create user logger
	userLogger := ui.NewUserLogger(ctx)

	// Load geese file
	gf, err := geesefile.Load(ctx, geeseFilePath)
	if err != nil {
		return nil, errors.Errorf("loading geese file: %w", err)
	}

	// Build the registry and load custom operations before anything runs a
	// chain: load once, freeze later, then resolution may fan out.
	registry := ops.NewRegistry()

	dir := opsDir
	if dir == "" {
		if s, ok := gf.System["$operations"].(string); ok {
			dir = s
		}
	}

	var opsReport *oploader.Result
	if dir != "" {
		loader, err := oploader.New(registry)
		if err != nil {
			return nil, errors.Errorf("creating operation loader: %w", err)
		}
		opsReport, err = loader.LoadDir(ctx, dir)
		if err != nil {
			return nil, errors.Errorf("loading custom operations: %w", err)
		}
		for _, loadErr := range opsReport.Errors {
			userLogger.LogValidation(false, "custom operation failed to load", loadErr)
		}
		if len(opsReport.Loaded) > 0 {
			userLogger.LogRunChange(fmt.Sprintf("loaded %d custom operations from %s", len(opsReport.Loaded), dir))
		}
	}

	executor, err := pipe.NewExecutor(registry)
	if err != nil {
		return nil, errors.Errorf("creating executor: %w", err)
	}

	builder, err := resolve.NewBuilder(executor)
	if err != nil {
		return nil, errors.Errorf("creating context builder: %w", err)
	}

	return &opts.RootOpts{
		GeeseFile:  gf,
		Builder:    builder,
		Config:     geesefile.MergedConfig(gf, nil),
		OpsReport:  opsReport,
		UserLogger: userLogger,
		WorkDir:    workDir,
		Parallel:   parallel,
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&geeseFilePath, "file", "f", ".geese", "geese file path")
	cmd.PersistentFlags().StringVar(&opsDir, "ops-dir", "", "custom operations directory (overrides $operations)")
	cmd.PersistentFlags().StringVarP(&workDir, "work-dir", "w", "", "working directory for target discovery (defaults to the geese file's directory)")
	cmd.PersistentFlags().IntVarP(&parallel, "jobs", "j", 1, "number of files to resolve at once")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
