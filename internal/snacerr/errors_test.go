package snacerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ExOK, CodeOf(nil))
	assert.Equal(t, ExError, CodeOf(errors.New("plain")))
	assert.Equal(t, ExBadEnvironment, CodeOf(New("no env", ExBadEnvironment)))
	assert.Equal(t, ExCheckFailure, CodeOf(New("bad check", ExCheckFailure)))
}

func TestCodeOfWrapped(t *testing.T) {
	inner := New("inner", ExCheckFailure)
	outer := fmt.Errorf("outer: %w", inner)
	assert.Equal(t, ExCheckFailure, CodeOf(outer))
}

func TestWrapChainsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, "failed to create log directory", ExBadEnvironment)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to create log directory: disk full", err.Error())
	assert.Equal(t, ExBadEnvironment, CodeOf(err))
}

func TestNewMessage(t *testing.T) {
	err := New("This tool must be run as root.", ExBadEnvironment)
	assert.Equal(t, "This tool must be run as root.", err.Error())
	assert.Nil(t, err.Unwrap())
}
