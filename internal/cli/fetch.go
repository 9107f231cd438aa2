package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/reviewdeck/internal/capability"
	"github.com/rshade/reviewdeck/internal/config"
	"github.com/rshade/reviewdeck/internal/lifecycle"
	"github.com/rshade/reviewdeck/internal/reviews"
	"github.com/rshade/reviewdeck/internal/tui"
)

// ErrFetchFailed is returned by fetch --strict when any review could not be fetched.
var ErrFetchFailed = errors.New("some reviews could not be fetched")

// fetchResult is one fetched review, or why it could not be fetched.
type fetchResult struct {
	ID     reviews.ID      `json:"id"`
	Review *reviews.Review `json:"review,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// fetchFlags holds the flags of the fetch command.
type fetchFlags struct {
	jsonOutput  bool
	strict      bool
	concurrency int
	sort        string
}

// NewFetchCmd creates the fetch command, which calls getReviews directly for each id.
func NewFetchCmd() *cobra.Command {
	var flags fetchFlags

	cmd := &cobra.Command{
		Use:   "fetch [ids...]",
		Short: "Fetch reviews through the restricted capability",
		Long: `Fetches each review concurrently through a capability narrowed to getReviews and
prints the results in id order, followed by a summary line.`,
		Example: `  # Fetch three reviews
  reviewdeck fetch 1 2 3

  # Fetch as JSON and fail if any review is missing
  reviewdeck fetch 1 404 --json --strict

  # Best rated first
  reviewdeck fetch 1 2 3 --sort rating:desc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "print results as JSON")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero when any review fails")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", runtime.NumCPU(), "maximum concurrent fetches")
	cmd.Flags().StringVar(&flags.sort, "sort", "",
		"sort results by id, name or rating, optionally with :asc or :desc (default: argument order)")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string, flags fetchFlags) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if flags.concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", flags.concurrency)
	}
	sortField, sortOrder, err := parseSort(flags.sort)
	if err != nil {
		return err
	}

	ops, stub, err := buildCapability(config.GetGlobalConfig())
	if err != nil {
		return err
	}
	ctx := reviewAPI.Provide(cmd.Context(), ops)

	token := lifecycle.New(ctx)
	defer token.Unmount()
	client := reviews.NewClient(capability.Restrict(reviewAPI.Value(ctx), token, reviews.OpGetReviews))

	results := make([]fetchResult, len(ids))
	g, gCtx := errgroup.WithContext(token.Context())
	g.SetLimit(flags.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			r, fetchErr := client.GetReviews(gCtx, id)
			results[i] = fetchResult{ID: id}
			if fetchErr != nil {
				results[i].Error = fetchErr.Error()
				logger.Debug().Ctx(gCtx).Err(fetchErr).Int("review_id", int(id)).Msg("fetch failed")
				// Other fetches keep going.
				return nil
			}
			results[i].Review = &r
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug().Ctx(ctx).Int64("stub_calls", stub.Calls()).Int("ids", len(ids)).Msg("fetch finished")

	results = sortResults(results, sortField, sortOrder)
	failed := 0
	for _, r := range results {
		if r.Review == nil {
			failed++
		}
	}

	if flags.jsonOutput {
		err = writeFetchJSON(cmd.OutOrStdout(), results)
	} else {
		err = writeFetchTable(cmd.OutOrStdout(), results, failed)
	}
	if err != nil {
		return err
	}

	if flags.strict && failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFetchFailed, failed, len(results))
	}
	return nil
}

func writeFetchJSON(w io.Writer, results []fetchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeFetchTable(w io.Writer, results []fetchResult, failed int) error {
	p := message.NewPrinter(language.English)
	for _, r := range results {
		var err error
		if r.Review != nil {
			_, err = p.Fprintf(w, "%-6d %s  %s\n", r.ID,
				tui.PlainStarRating(r.Review.Rating, reviews.MaxRating), r.Review.Name)
		} else {
			_, err = p.Fprintf(w, "%-6d error: %s\n", r.ID, r.Error)
		}
		if err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "\n%d reviews fetched, %d failed\n", len(results)-failed, failed)
	return err
}
