package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reviewdeck/internal/reviews"
	"github.com/rshade/reviewdeck/internal/view"
)

func TestShow_DefaultsToSampleReview(t *testing.T) {
	setupCLITest(t, fastConfig)

	out, _, err := execute(t, "show", "--plain")
	require.NoError(t, err)

	// The pending view comes first, then the loaded summary.
	pending := strings.Index(out, "#123 "+view.Placeholder)
	loaded := strings.Index(out, reviews.SampleName)
	require.GreaterOrEqual(t, pending, 0, out)
	require.Greater(t, loaded, pending, out)
	assert.Contains(t, out, "★★★☆☆ (3/5)")
}

func TestShow_MultipleIDsInOrder(t *testing.T) {
	setupCLITest(t, fastConfig)

	out, _, err := execute(t, "show", "3", "123", "999", "--plain")
	require.NoError(t, err)

	third := strings.Index(out, "Lanterns Over Lisbon")
	sample := strings.Index(out, "\n#123\n")
	fallback := strings.Index(out, "\n#999\n")
	require.GreaterOrEqual(t, third, 0, out)
	assert.Less(t, third, sample)
	assert.Less(t, sample, fallback)
}

func TestShow_TimeoutKeepsPlaceholder(t *testing.T) {
	// Without in-flight sharing the slow call observes the deadline itself.
	home := setupCLITest(t, "version: 1.0.0\ncapability:\n  share_inflight: false\n")
	fixtures := writeFixtures(t, home, `version: 1.0.0
reviews:
  - id: 7
    name: Slow Review
    rating: 4
    delay: 10s
`)
	t.Setenv("REVIEWDECK_FIXTURES", fixtures)

	out, _, err := execute(t, "show", "7", "--plain", "--timeout", "20ms")
	require.NoError(t, err)
	assert.NotContains(t, out, "Slow Review")
	assert.Equal(t, 2, strings.Count(out, view.Placeholder))
}

func TestShow_LoadsAllIDsConcurrently(t *testing.T) {
	home := setupCLITest(t, "version: 1.0.0\nlogging:\n  level: error\n")
	fixtures := writeFixtures(t, home, `version: 1.0.0
default_delay: 300ms
fallback:
  name: Slow Fallback
  rating: 2
reviews: []
`)
	t.Setenv("REVIEWDECK_FIXTURES", fixtures)

	// Six loads of 300ms each only fit in the deadline when none waits for another.
	out, _, err := execute(t, "show", "1", "2", "3", "4", "5", "6", "--plain", "--timeout", "800ms")
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(out, "Slow Fallback"), out)
	assert.Equal(t, 6, strings.Count(out, view.Placeholder), "only the pending section shows placeholders")
}

func TestShow_ShowErrors(t *testing.T) {
	home := setupCLITest(t, fastConfig+"loader:\n  show_errors: true\n")
	fixtures := writeFixtures(t, home, `version: 1.0.0
reviews:
  - id: 1
    name: Only
    rating: 1
`)
	t.Setenv("REVIEWDECK_FIXTURES", fixtures)

	out, _, err := execute(t, "show", "2", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Could not load review")
	assert.Contains(t, out, reviews.ErrNotFound.Error())
}

func TestShow_InvalidID(t *testing.T) {
	setupCLITest(t, fastConfig)

	_, _, err := execute(t, "show", "abc", "--plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid review id "abc"`)
}

func TestShow_BadFixtures(t *testing.T) {
	home := setupCLITest(t, fastConfig)
	t.Setenv("REVIEWDECK_FIXTURES", writeFixtures(t, home, "version: 2.0.0\nreviews: []\n"))

	_, _, err := execute(t, "show", "--plain")
	require.Error(t, err)
	assert.ErrorIs(t, err, reviews.ErrInvalidFixtures)
}
