package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/reviewdeck/internal/capability"
	"github.com/rshade/reviewdeck/internal/config"
	"github.com/rshade/reviewdeck/internal/loader"
	"github.com/rshade/reviewdeck/internal/reviews"
	"github.com/rshade/reviewdeck/internal/tui"
)

// defaultShowTimeout bounds how long non-interactive output waits for reviews.
const defaultShowTimeout = 10 * time.Second

// showFlags holds the flags of the show command.
type showFlags struct {
	plain   bool
	noColor bool
	timeout time.Duration
}

// NewShowCmd creates the show command, which renders review summaries.
func NewShowCmd() *cobra.Command {
	var flags showFlags

	cmd := &cobra.Command{
		Use:   "show [ids...]",
		Short: "Show review summaries",
		Long: `Shows a review summary for each id. Each summary reads "Please Wait..." until its
review has loaded.

On a terminal this opens an interactive browser. Otherwise, or with --plain, the summaries
are printed once every review has loaded or the timeout has passed; reviews still pending
at that point keep the placeholder.`,
		Example: `  # Browse reviews 1, 2 and 3
  reviewdeck show 1 2 3

  # Print the sample review without styling
  reviewdeck show --plain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print summaries instead of opening the browser")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable styled output")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", defaultShowTimeout,
		"how long printed output waits for reviews")

	return cmd
}

func runShow(cmd *cobra.Command, args []string, flags showFlags) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()
	ops, _, err := buildCapability(cfg)
	if err != nil {
		return err
	}

	ctx := reviewAPI.Provide(cmd.Context(), ops)
	construct := tui.LoadedReviewSummary(reviewAPI)
	props := tui.ReviewProps{ShowErrors: cfg.Loader.ShowErrors}

	mode := tui.DetectOutputMode(flags.plain, flags.noColor, false)
	logger.Debug().Ctx(ctx).
		Str("output_mode", mode.String()).
		Int("ids", len(ids)).
		Msg("showing reviews")

	if mode == tui.OutputModeInteractive {
		return runBrowser(ctx, construct, ids, props)
	}

	props.Plain = mode == tui.OutputModePlain
	ctx, cancel := context.WithTimeout(ctx, flags.timeout)
	defer cancel()
	return renderSummaries(ctx, cmd.OutOrStdout(), construct, ids, props)
}

func runBrowser(
	ctx context.Context,
	construct capability.Constructor[tui.ReviewProps],
	ids []reviews.ID,
	props tui.ReviewProps,
) error {
	model, err := tui.NewBrowserModel(ctx, construct, ids, props)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// renderSummaries prints each summary's pending view, drives every summary to completion
// concurrently, then prints the final views in id order. Loads are not limited: each one
// mostly waits on its operation, and all of them share the deadline on ctx.
func renderSummaries(
	ctx context.Context,
	w io.Writer,
	construct capability.Constructor[tui.ReviewProps],
	ids []reviews.ID,
	props tui.ReviewProps,
) error {
	summaries := make([]capability.Component[tui.ReviewProps], len(ids))
	for i, id := range ids {
		p := props
		p.ID = id
		summaries[i] = construct(ctx, p)
		if _, err := fmt.Fprintf(w, "#%d %s\n", id, summaries[i].View()); err != nil {
			return err
		}
	}

	g := new(errgroup.Group)
	for _, s := range summaries {
		g.Go(func() error {
			loader.Settle(s, s.Init())
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		logger.Debug().Ctx(ctx).Err(err).Msg("deadline reached before every review loaded")
	}

	for i, s := range summaries {
		if _, err := fmt.Fprintf(w, "\n#%d\n%s\n", ids[i], s.View()); err != nil {
			return err
		}
		s.Teardown()
	}
	return nil
}
