package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotcli/spot/pkg/version"
)

func TestVersionCommand_Default(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "spot")
	assert.Contains(t, out, version.Version)
}

func TestVersionCommand_Short(t *testing.T) {
	out, err := runCommand(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)
}

func TestVersionCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "version", "--json")
	require.NoError(t, err)

	var info version.BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestInteractive_RefusesNonTTY(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Under go test stdout is a pipe, so the interactive path must
	// refuse and point at 'spot search'.
	_, err := runCommand(t, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spot search")
}
