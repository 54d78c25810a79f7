package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/walteh/geese/cmd/geese/commands"
	"github.com/walteh/geese/cmd/geese/ui"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	// Create user logger
	userLogger := ui.NewUserLogger(ctx)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "geese",
		Short: "Resolve per-file contexts from geese property declarations",
		Long: `geese reads a geese file declaring properties whose values are either
literals or pipe-chain expressions ("hello" ~> trim ~> toUpperCase),
discovers target files through $include/$exclude glob patterns, and
resolves every property per target file.`,
		// Flags are bound by now; apply the debug level before any command runs.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Commands initialize their own dependencies lazily so that flag values
	// are bound before the geese file loads.
	rootCmd.AddCommand(
		commands.NewResolveCmd(newRootOpts),
		commands.NewTargetsCmd(newRootOpts),
		commands.NewOpsCmd(newRootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
