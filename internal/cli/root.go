package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/reviewdeck/internal/capability"
	"github.com/rshade/reviewdeck/internal/config"
	"github.com/rshade/reviewdeck/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// reviewAPI is the ambient review capability. Its default exposes no operations; commands
// provide the configured capability on their context.
//
//nolint:gochecknoglobals // Bindings are process-wide keys; values travel on the context.
var reviewAPI = capability.NewBinding[capability.Capability](capability.Set{})

// NewRootCmd creates the root Cobra command for the reviewdeck CLI.
// It loads configuration, wires up logging and tracing, and adds the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "reviewdeck",
		Short:         "Browse review summaries loaded through an injected capability",
		Long:          "reviewdeck: render review summaries that load asynchronously, once per id, and never update after teardown",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.InitGlobalConfigWithOverlay(configPath); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			logResult = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"configuration file merged over the one in the config directory")
	cmd.AddCommand(NewShowCmd(), NewFetchCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Show the sample review
  reviewdeck show

  # Browse several reviews interactively
  reviewdeck show 1 2 3 123

  # Print summaries without the interactive browser
  reviewdeck show 1 2 --plain

  # Fetch reviews directly through the restricted capability
  reviewdeck fetch 1 2 3 --json

  # Initialize configuration
  reviewdeck config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigValidateCmd(),
		NewConfigShowCmd(), NewConfigFixturesCmd(),
	)
	return cmd
}
