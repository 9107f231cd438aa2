package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/reviewdeck/internal/cli"
	"github.com/rshade/reviewdeck/internal/config"
)

// fastConfig keeps stub latency out of test runtime.
const fastConfig = `version: 1.0.0
logging:
  level: error
  format: json
stub:
  default_delay: 1ms
`

// setupCLITest points the config directory at a temp dir holding configYAML, if any, and
// registers cleanup for global state.
func setupCLITest(t *testing.T, configYAML string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	if configYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(configYAML), 0o600))
	}
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFixtures writes a fixtures file into dir and returns its path.
func writeFixtures(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
