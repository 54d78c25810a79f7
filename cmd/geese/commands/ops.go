package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewOpsCmd creates a new ops command
func NewOpsCmd(newOpts OptsFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the registered pipe operations",
		Long: `Ops lists every operation available to chain expressions: the built-in
catalog plus any custom operations loaded from the operations directory.
A custom operation shadowing a built-in is marked as custom.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "ops").Logger().WithContext(ctx)

			o, err := newOpts(ctx)
			if err != nil {
				return err
			}

			registry := o.Builder.Executor().Registry()
			for _, name := range registry.List() {
				kind := "builtin"
				if !registry.IsBuiltin(name) {
					kind = "custom"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", name, kind)
			}
			return nil
		},
	}

	return cmd
}
