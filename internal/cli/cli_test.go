package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PathSources(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{"definitions flag", []string{"--definitions", "defs/"}, "defs/"},
		{"shorthand flag", []string{"-d", "defs/"}, "defs/"},
		{"positional argument", []string{"defs/"}, "defs/"},
		{"flag wins over positional", []string{"--definitions", "a/", "b/"}, "a/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg, exit, err := Parse(tc.args, &out)
			require.NoError(t, err)
			require.False(t, exit)
			assert.Equal(t, tc.want, cfg.DefinitionsPath)
		})
	}
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"defs/"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Validation(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"bad log format", []string{"--log-format", "yaml", "defs/"}},
		{"bad log level", []string{"--log-level", "loud", "defs/"}},
		{"unknown flag", []string{"--bogus", "defs/"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			require.Error(t, err)
			exitErr, ok := err.(*ExitError)
			require.True(t, ok)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestParse_CaseInsensitiveLogSettings(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"--log-format", "TEXT", "--log-level", "DEBUG", "defs/"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}
