package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reviewdeck/internal/cli"
)

const strictFixtures = `version: 1.0.0
default_delay: 1ms
reviews:
  - id: 1
    name: First
    rating: 4
  - id: 2
    name: Second
    rating: 2
`

func TestFetch_Table(t *testing.T) {
	setupCLITest(t, fastConfig)

	out, _, err := execute(t, "fetch", "3", "123")
	require.NoError(t, err)
	assert.Contains(t, out, "★★★★★  Lanterns Over Lisbon")
	assert.Contains(t, out, "★★★☆☆  Francine Periwinkle's Peticoat Blues")
	assert.Contains(t, out, "2 reviews fetched, 0 failed")
}

func TestFetch_JSON(t *testing.T) {
	home := setupCLITest(t, fastConfig)
	t.Setenv("REVIEWDECK_FIXTURES", writeFixtures(t, home, strictFixtures))

	out, _, err := execute(t, "fetch", "2", "1", "9", "--json")
	require.NoError(t, err)

	var results []struct {
		ID     int `json:"id"`
		Review *struct {
			Name   string `json:"name"`
			Rating int    `json:"rating"`
		} `json:"review"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)

	assert.Equal(t, 2, results[0].ID)
	require.NotNil(t, results[0].Review)
	assert.Equal(t, "Second", results[0].Review.Name)
	assert.Equal(t, "First", results[1].Review.Name)
	assert.Nil(t, results[2].Review)
	assert.Contains(t, results[2].Error, "review not found")
}

func TestFetch_Strict(t *testing.T) {
	home := setupCLITest(t, fastConfig)
	t.Setenv("REVIEWDECK_FIXTURES", writeFixtures(t, home, strictFixtures))

	out, _, err := execute(t, "fetch", "1", "9", "--strict")
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrFetchFailed)
	assert.Contains(t, out, "1 reviews fetched, 1 failed")

	_, _, err = execute(t, "fetch", "1", "2", "--strict")
	assert.NoError(t, err)
}

func TestFetch_WithCache(t *testing.T) {
	setupCLITest(t, fastConfig+"capability:\n  share_inflight: true\n  cache_ttl: 1m\n")

	out, _, err := execute(t, "fetch", "3", "3", "3", "--concurrency", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "3 reviews fetched, 0 failed")
}

func TestFetch_InvalidConcurrency(t *testing.T) {
	setupCLITest(t, fastConfig)

	_, _, err := execute(t, "fetch", "--concurrency", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency must be >= 1")
}
