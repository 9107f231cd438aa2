package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/rshade/reviewdeck/internal/config"
	"github.com/rshade/reviewdeck/internal/reviews"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration (file, --config overlay and environment).

This includes:
- Schema version compatibility
- Logging level and format
- Cache TTL bounds
- The review fixtures file, if one is configured`,
		Example: `  # Validate current configuration
  reviewdeck config validate

  # Show the checked settings
  reviewdeck config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()

			var problems *multierror.Error
			if err := cfg.Validate(); err != nil {
				problems = multierror.Append(problems, err)
			}
			if cfg.Stub.Fixtures != "" {
				if _, err := reviews.LoadFixtures(cfg.Stub.Fixtures); err != nil {
					problems = multierror.Append(problems, err)
				}
			}

			if err := problems.ErrorOrNil(); err != nil {
				cmd.PrintErrln("Configuration is invalid:")
				cmd.PrintErrln(err.Error())
				return errors.New("configuration validation failed")
			}

			cmd.Println("Configuration is valid")
			if verbose {
				cmd.Printf("  version: %s\n", cfg.Version)
				cmd.Printf("  logging: level=%s format=%s\n", cfg.Logging.Level, cfg.Logging.Format)
				cmd.Printf("  capability: share_inflight=%t cache_ttl=%s\n",
					cfg.Capability.ShareInflight, cfg.Capability.CacheTTL)
				cmd.Printf("  stub: default_delay=%s fixtures=%s\n", cfg.Stub.DefaultDelay, fixturesLabel(cfg))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the validated settings")

	return cmd
}

func fixturesLabel(cfg *config.Config) string {
	if cfg.Stub.Fixtures == "" {
		return "(built-in)"
	}
	return fmt.Sprintf("%q", cfg.Stub.Fixtures)
}
