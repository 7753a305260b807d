package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morroware/DupeFInder/internal/runconfig"
)

func TestConfigShowCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range configCmd.Commands() {
		if cmd.Use == "show" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestConfigShowHumanOutput(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"config", "show", "--path", dir})
	defer rootCmd.SetArgs(nil)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "roots:")
	assert.Contains(t, buf.String(), dir)
}

func TestConfigShowJSONOutput(t *testing.T) {
	dir := t.TempDir()
	rootCmd.SetArgs([]string{"config", "show", "--path", dir, "--json"})
	defer rootCmd.SetArgs(nil)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())

	var cfg runconfig.Config
	require.NoError(t, json.Unmarshal(buf.Bytes(), &cfg))
	assert.Contains(t, cfg.Roots, dir)
}
