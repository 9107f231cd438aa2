package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/reviewdeck/internal/config"
	"github.com/rshade/reviewdeck/internal/reviews"
)

// NewConfigShowCmd creates the config show command, which prints the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(config.GetGlobalConfig())
			if err != nil {
				return fmt.Errorf("marshalling configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// NewConfigFixturesCmd creates the config fixtures command, which writes the built-in review
// fixtures as a starting point for a custom fixtures file.
func NewConfigFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures [path]",
		Short: "Write the built-in review fixtures",
		Long: `Writes the built-in review fixtures as YAML to path, or to stdout when no path is
given. Point stub.fixtures (or REVIEWDECK_FIXTURES) at the edited file to use it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := reviews.DefaultFixtures().Marshal()
			if err != nil {
				return fmt.Errorf("marshalling fixtures: %w", err)
			}
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err = os.WriteFile(args[0], data, 0600); err != nil {
				return fmt.Errorf("writing fixtures: %w", err)
			}
			cmd.Printf("Fixtures written to %s\n", args[0])
			return nil
		},
	}
}
