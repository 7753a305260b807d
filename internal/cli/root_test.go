package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morroware/DupeFInder/internal/runerr"
)

func TestRootCommandUse(t *testing.T) {
	assert.Equal(t, "dupefinder", rootCmd.Use)
}

func TestRootCommandSilencesUsageAndErrors(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCommandHasGlobalFlags(t *testing.T) {
	for _, name := range []string{"path", "action", "threads", "profile", "profile-file"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		require.NotNilf(t, flag, "root command must register --%s", name)
	}
}

func TestExtractExitCodeMapsRunerrError(t *testing.T) {
	err := runerr.New(runerr.CodeConfigInvalid, "bad config")
	assert.Equal(t, runerr.ExitConfigError, extractExitCode(err))
}

func TestExtractExitCodeUnmappedErrorIsUnexpected(t *testing.T) {
	assert.Equal(t, runerr.ExitUnexpected, extractExitCode(assertErr{}))
}

func TestExtractExitCodeNilIsSuccess(t *testing.T) {
	assert.Equal(t, runerr.ExitSuccess, extractExitCode(nil))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestGlobalFlagsReturnsBoundValues(t *testing.T) {
	assert.NotNil(t, GlobalFlags())
	assert.Same(t, flagValues, GlobalFlags())
}

func TestRootCmdAccessorReturnsSameCommand(t *testing.T) {
	assert.Same(t, rootCmd, RootCmd())
}
