package runerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageShape(t *testing.T) {
	plain := New(CodeConfigInvalid, "missing --path")
	assert.Equal(t, "config.invalid: missing --path", plain.Error())

	wrapped := Wrap(CodeWalkIO, "stat failed", errors.New("permission denied"))
	assert.Equal(t, "walk.io: stat failed: permission denied", wrapped.Error())
	assert.Equal(t, "permission denied", wrapped.Unwrap().Error())
}

func TestExitCodeMapping(t *testing.T) {
	assert.Equal(t, ExitConfigError, New(CodeConfigInvalid, "x").ExitCode())
	assert.Equal(t, ExitRefused, New(CodeCacheLocked, "x").ExitCode())
	assert.Equal(t, ExitCancelled, Cancelled().ExitCode())
	assert.Equal(t, ExitUnexpected, New(CodeHashRead, "x").ExitCode())
}

func TestCancelledSentinel(t *testing.T) {
	err := Cancelled()
	assert.True(t, IsCancelled(err))
	assert.False(t, IsCancelled(New(CodeWalkIO, "x")))
	assert.False(t, IsCancelled(errors.New("plain")))
}

func TestErrorsAs(t *testing.T) {
	var target *Error
	err := error(Wrap(CodeGateOwner, "owner mismatch", errors.New("inner")))
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, CodeGateOwner, target.Code)
}
