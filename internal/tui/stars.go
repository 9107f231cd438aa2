package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/reviewdeck/internal/reviews"
)

const (
	starActive   = "★"
	starInactive = "☆"
)

// StarRating draws starCount stars, the first rating of them highlighted.
func StarRating(rating, starCount int) string {
	var b strings.Builder
	for i := range starCount {
		if i < rating {
			b.WriteString(ActiveStarStyle.Render(starActive))
		} else {
			b.WriteString(InactiveStarStyle.Render(starActive))
		}
	}
	b.WriteString(LabelStyle.Render(fmt.Sprintf("  %d/%d", clampRating(rating, starCount), starCount)))
	return b.String()
}

// PlainStarRating is StarRating without styling: filled and hollow stars.
func PlainStarRating(rating, starCount int) string {
	r := clampRating(rating, starCount)
	return strings.Repeat(starActive, r) + strings.Repeat(starInactive, starCount-r)
}

// RenderReviewSummary renders a review as a caption over its star rating.
func RenderReviewSummary(r reviews.Review) string {
	return HeaderStyle.Render(r.Name) + "\n" + StarRating(r.Rating, reviews.MaxRating)
}

// PlainReviewSummary renders a review without styling.
func PlainReviewSummary(r reviews.Review) string {
	return fmt.Sprintf("%s\n%s (%d/%d)", r.Name,
		PlainStarRating(r.Rating, reviews.MaxRating), clampRating(r.Rating, reviews.MaxRating), reviews.MaxRating)
}

func clampRating(rating, starCount int) int {
	return max(0, min(rating, starCount))
}
