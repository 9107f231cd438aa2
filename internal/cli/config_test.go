package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/reviewdeck/internal/config"
	"github.com/rshade/reviewdeck/internal/reviews"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t, "")

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	path := filepath.Join(home, "config.yaml")
	loaded := config.Default()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, config.Default(), loaded)

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		setupCLITest(t, fastConfig)

		out, _, err := execute(t, "config", "validate", "--verbose")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration is valid")
		assert.Contains(t, out, "fixtures=(built-in)")
	})

	t.Run("invalid", func(t *testing.T) {
		setupCLITest(t, "version: 1.0.0\ncapability:\n  cache_ttl: 48h\n")

		_, stderr, err := execute(t, "config", "validate")
		require.Error(t, err)
		assert.Contains(t, stderr, "cache_ttl")
	})

	t.Run("bad fixtures", func(t *testing.T) {
		home := setupCLITest(t, fastConfig)
		t.Setenv("REVIEWDECK_FIXTURES", writeFixtures(t, home, "version: 1.0.0\nreviews:\n  - id: 1\n    rating: 9\n"))

		_, stderr, err := execute(t, "config", "validate")
		require.Error(t, err)
		assert.Contains(t, stderr, "name is required")
	})
}

func TestConfigOverlay(t *testing.T) {
	home := setupCLITest(t, fastConfig)
	overlay := filepath.Join(home, "overlay.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("loader:\n  show_errors: true\n"), 0o600))

	out, _, err := execute(t, "config", "show", "--config", overlay)
	require.NoError(t, err)
	assert.Contains(t, out, "show_errors: true")
	assert.Contains(t, out, "default_delay: 1ms")
}

func TestConfigFixtures(t *testing.T) {
	home := setupCLITest(t, fastConfig)

	out, _, err := execute(t, "config", "fixtures")
	require.NoError(t, err)
	parsed, err := reviews.ParseFixtures([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, reviews.DefaultFixtures(), parsed)

	path := filepath.Join(home, "out.yaml")
	out, _, err = execute(t, "config", "fixtures", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Fixtures written to")

	loaded, err := reviews.LoadFixtures(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Reviews, len(reviews.DefaultFixtures().Reviews))
}
