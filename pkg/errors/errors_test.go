package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	plain := New(CodeValidation, "required field missing")
	assert.Equal(t, "validation_error: required field missing", plain.Error())

	wrapped := Wrap(io.EOF, CodeTransient, "read response")
	assert.Equal(t, "transient: read response: EOF", wrapped.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	err := Wrap(io.EOF, CodeTransient, "read response")
	assert.ErrorIs(t, err, io.EOF)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeParse, CodeOf(New(CodeParse, "bad xml")))
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("uncoded")), "uncoded errors default to internal")

	// The outermost code wins when wrapping reclassifies.
	inner := New(CodeTransient, "upstream failure")
	outer := Wrap(inner, CodeRetriesExhausted, "gave up")
	assert.Equal(t, CodeRetriesExhausted, CodeOf(outer))

	// A coded error buried under stdlib wrapping is still found.
	buried := fmt.Errorf("handling case: %w", New(CodeTerminal, "rejected"))
	assert.Equal(t, CodeTerminal, CodeOf(buried))
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(New(CodeTransient, "timeout")))
	assert.False(t, Retryable(New(CodeTerminal, "forbidden")))
	assert.False(t, Retryable(New(CodeNotFound, "absent")))
	assert.False(t, Retryable(Wrap(New(CodeTransient, "timeout"), CodeRetriesExhausted, "gave up")),
		"an exhausted retry budget must not trigger another retry loop")
	assert.False(t, Retryable(stderrors.New("uncoded")))
}

func TestNewf(t *testing.T) {
	err := Newf(CodeValidation, "field %s is required", "ou_code")
	require.Equal(t, "field ou_code is required", err.Message)
	assert.Equal(t, CodeValidation, err.Code)
}
