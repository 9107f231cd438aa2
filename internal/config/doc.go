// Package config loads, validates and persists the reviewdeck configuration.
//
// Configuration is read from $REVIEWDECK_HOME/config.yaml (default ~/.reviewdeck), optionally
// shallow-merged with an overlay file passed via --config, and finally overridden by
// REVIEWDECK_* environment variables.
package config
