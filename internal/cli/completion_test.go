package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "completion" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCompletionCommandValidArgs(t *testing.T) {
	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, completionCmd.ValidArgs)
}

func TestCompletionGeneratesBashScript(t *testing.T) {
	rootCmd.SetArgs([]string{"completion", "bash"})
	defer rootCmd.SetArgs(nil)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "bash")
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	rootCmd.SetArgs([]string{"completion", "cmd"})
	defer rootCmd.SetArgs(nil)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)

	assert.Error(t, rootCmd.Execute())
}
