package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeRootNotFound, "package root directory not found: /x")
	assert.Equal(t, "ROOT_NOT_FOUND: package root directory not found: /x", err.Error())

	wrapped := Wrap(errors.New("boom"), ErrCodeCommandFailed, "command failed")
	assert.Contains(t, wrapped.Error(), "COMMAND_FAILED")
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, ErrCodeGitFetchFailed, "fetch failed")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsMatchesCode(t *testing.T) {
	err := RootNotFound("/missing")
	assert.True(t, Is(err, ErrCodeRootNotFound))
	assert.False(t, Is(err, ErrCodeConfigInvalid))
	assert.False(t, Is(nil, ErrCodeRootNotFound))
}

func TestIsUnwrapsNestedErrors(t *testing.T) {
	inner := ConfigInvalid("bad value")
	outer := fmt.Errorf("loading: %w", inner)
	assert.True(t, Is(outer, ErrCodeConfigInvalid))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeNoRepositories, GetCode(NoRepositories("/empty")))
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad input").
		WithDetail("field", "name").
		WithDetail("value", 42)

	require.NotNil(t, err.Details)
	assert.Equal(t, "name", err.Details["field"])
	assert.Equal(t, 42, err.Details["value"])
	assert.Contains(t, err.ToJSON(), "INVALID_INPUT")
}
