package rolandqd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeMapping(t *testing.T) {
	assert.Equal(t, 1, InvalidArguments.ExitCode())
	assert.Equal(t, 2, IoFailure.ExitCode())
	assert.Equal(t, 3, SyncNotFound.ExitCode())
	assert.Equal(t, 3, ChecksumMismatch.ExitCode())
	assert.Equal(t, 3, SysexFrameError.ExitCode())
	assert.Equal(t, 3, OutOfRange.ExitCode())
}

func TestPipelineErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := wrapError(IoFailure, cause, "reading %s", "disk.qd")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "reading disk.qd")
	assert.Contains(t, err.Error(), "I/O failure")
}

func TestNewErrorHasNoUnderlyingCause(t *testing.T) {
	err := newError(OutOfRange, "bank %d out of range", 7)
	assert.Nil(t, err.Unwrap())
	assert.Contains(t, err.Error(), "bank 7 out of range")
}
