package commands

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/geese/cmd/geese/opts"
	"github.com/walteh/geese/pkg/log"
	"github.com/walteh/geese/pkg/resolve"
)

// OptsFunc builds the shared root options after flags are bound.
type OptsFunc func(ctx context.Context) (*opts.RootOpts, error)

// NewResolveCmd creates a new resolve command
func NewResolveCmd(newOpts OptsFunc) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve property contexts for every target file",
		Long: `Resolve collects the target files selected by the geese file's
$include/$exclude patterns and builds the resolved property context for
each one. A file that fails to resolve is reported and does not stop the
remaining files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "resolve").Logger().WithContext(ctx)

			o, err := newOpts(ctx)
			if err != nil {
				return err
			}

			report, err := resolve.Run(ctx, resolve.Options{
				GeeseFile: o.GeeseFile,
				Builder:   o.Builder,
				Config:    o.Config,
				WorkDir:   o.WorkDir,
				Parallel:  o.Parallel,
			})
			if err != nil {
				return errors.Errorf("resolving contexts: %w", err)
			}

			if asJSON {
				return printJSON(cmd, report)
			}

			workDir := o.WorkDir
			if workDir == "" {
				workDir = o.GeeseFile.Dir
			}

			display := log.New(cmd.OutOrStdout(), zerolog.Ctx(ctx).GetLevel())
			display.Header("resolving target contexts")
			display.StartRun(ctx, log.RunInfo{
				GeeseFile: o.GeeseFile.Name,
				WorkDir:   workDir,
				Targets:   len(report.Results),
			})
			for _, res := range report.Results {
				if res.Err != nil {
					display.LogFileResolution(ctx, log.FileResolution{
						Path:    res.Path,
						Status:  res.Err.Error(),
						IsError: true,
					})
					continue
				}
				display.LogFileResolution(ctx, log.FileResolution{
					Path:       res.Path,
					Status:     "resolved",
					Properties: len(res.Context),
				})
			}
			display.EndRun(ctx)
			display.LogNewline()

			if failed := report.Failed(); len(failed) > 0 {
				for _, res := range failed {
					o.UserLogger.LogFileFailure(res.Path, res.Err)
				}
				return errors.Errorf("%d of %d files failed to resolve", len(failed), len(report.Results))
			}
			display.Successf("resolved %d files", len(report.Results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print resolved contexts as JSON")

	return cmd
}

func printJSON(cmd *cobra.Command, report *resolve.Report) error {
	out := map[string]any{}
	for _, res := range report.Results {
		if res.Err != nil {
			out[res.Path] = map[string]any{"error": res.Err.Error()}
			continue
		}
		out[res.Path] = res.Context
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Errorf("encoding report: %w", err)
	}
	return nil
}
