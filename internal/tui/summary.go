package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/reviewdeck/internal/capability"
	"github.com/rshade/reviewdeck/internal/loader"
	"github.com/rshade/reviewdeck/internal/reviews"
)

// ReviewProps are the props of a review summary.
type ReviewProps struct {
	ID reviews.ID
	// Plain renders without Lip Gloss styling.
	Plain bool
	// ShowErrors renders fetch failures instead of the placeholder.
	ShowErrors bool
}

// ReviewSummary loads one review through a restricted capability and renders it.
type ReviewSummary struct {
	props  ReviewProps
	loader *loader.Loader[reviews.ID, reviews.Review]
}

// NewReviewSummary builds a ReviewSummary. It only ever calls getReviews on api.
func NewReviewSummary(ctx context.Context, props ReviewProps, api *capability.Restricted) capability.Component[ReviewProps] {
	render := RenderReviewSummary
	failure := func(err error) string { return CriticalStyle.Render("Could not load review: " + err.Error()) }
	if props.Plain {
		render = PlainReviewSummary
		failure = func(err error) string { return "Could not load review: " + err.Error() }
	}

	var opts []loader.Option
	if props.ShowErrors {
		opts = append(opts, loader.WithFailureView(failure))
	}

	client := reviews.NewClient(api)
	return &ReviewSummary{
		props:  props,
		loader: loader.New(ctx, props.ID, client.GetReviews, render, opts...),
	}
}

// LoadedReviewSummary returns a constructor for review summaries wired to the capability
// bound by b.
func LoadedReviewSummary(b *capability.Binding[capability.Capability]) capability.Constructor[ReviewProps] {
	return capability.With[ReviewProps](b, reviews.OpGetReviews)(NewReviewSummary)
}

// Init implements tea.Model.
func (s *ReviewSummary) Init() tea.Cmd {
	return s.loader.Init()
}

// Update implements tea.Model.
func (s *ReviewSummary) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := s.loader.Update(msg)
	return s, cmd
}

// View implements tea.Model.
func (s *ReviewSummary) View() string {
	return s.loader.View()
}

// SetProps implements capability.Component. Only an id change triggers a fetch.
func (s *ReviewSummary) SetProps(props ReviewProps) tea.Cmd {
	s.props = props
	return s.loader.SetID(props.ID)
}

// Teardown implements capability.Component.
func (s *ReviewSummary) Teardown() {
	s.loader.Teardown()
}
