package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/geese/pkg/log"
	"github.com/walteh/geese/pkg/target"
)

// NewTargetsCmd creates a new targets command
func NewTargetsCmd(newOpts OptsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the target files the geese file selects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "targets").Logger().WithContext(ctx)

			o, err := newOpts(ctx)
			if err != nil {
				return err
			}

			includes, err := o.GeeseFile.IncludePatterns()
			if err != nil {
				return err
			}
			excludes, err := o.GeeseFile.ExcludePatterns()
			if err != nil {
				return err
			}

			workDir := o.WorkDir
			if workDir == "" {
				workDir = o.GeeseFile.Dir
			}

			paths, err := target.Collect(ctx, includes, excludes, workDir)
			if err != nil {
				return errors.Errorf("collecting target files: %w", err)
			}

			display := log.New(cmd.OutOrStdout(), zerolog.Ctx(ctx).GetLevel())
			display.Infof("include %s exclude %s under %s",
				target.PatternListString(includes), target.PatternListString(excludes), workDir)

			if len(paths) == 0 {
				display.Warningf("no files matched")
				return nil
			}
			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	return cmd
}
