package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDetectOutputMode(t *testing.T) {
	tests := []struct {
		name       string
		forcePlain bool
		noColor    bool
		ciMode     bool
		env        map[string]string
		stdin      bool
		stdout     bool
		want       OutputMode
	}{
		{name: "tty", stdin: true, stdout: true, want: OutputModeInteractive},
		{name: "force plain", forcePlain: true, stdin: true, stdout: true, want: OutputModePlain},
		{name: "no color flag", noColor: true, stdin: true, stdout: true, want: OutputModePlain},
		{name: "NO_COLOR env", env: map[string]string{"NO_COLOR": ""}, stdin: true, stdout: true, want: OutputModePlain},
		{name: "dumb term", env: map[string]string{"TERM": "dumb"}, stdin: true, stdout: true, want: OutputModePlain},
		{name: "piped stdout", stdin: true, stdout: false, want: OutputModePlain},
		{name: "ci env", env: map[string]string{"CI": "true"}, stdin: true, stdout: true, want: OutputModeStyled},
		{name: "ci flag", ciMode: true, stdin: true, stdout: true, want: OutputModeStyled},
		{name: "piped stdin", stdin: false, stdout: true, want: OutputModeStyled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.forcePlain, tt.noColor, tt.ciMode, envOf(tt.env), tt.stdin, tt.stdout)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
	assert.Equal(t, "unknown", OutputMode(42).String())
}

func TestTerminalWidth(t *testing.T) {
	// Under go test stdout is usually not a terminal.
	assert.Positive(t, TerminalWidth())
}
