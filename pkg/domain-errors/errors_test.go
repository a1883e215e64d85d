package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CarriesCodeAndMessage(t *testing.T) {
	err := New(CodeNotFound, "visualization not found")
	require.Error(t, err)
	assert.True(t, Is(err, CodeNotFound))
	assert.Equal(t, "visualization not found", err.Error())
}

func TestWrap_PreservesUnderlyingChain(t *testing.T) {
	cause := errors.New("sql: no rows in result set")
	err := Wrap(cause, CodeNotFound, "report not found")

	assert.True(t, Is(err, CodeNotFound))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "report not found: sql: no rows in result set", err.Error())
}

func TestWrap_NilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(nil, CodeBadRequest, "invalid request body")
	assert.True(t, Is(err, CodeBadRequest))
	assert.Equal(t, "invalid request body", err.Error())
}

func TestIs_WalksWrappedChain(t *testing.T) {
	inner := New(CodeUnprocessable, "convergence must be below 1")
	outer := fmt.Errorf("pipeline stage failed: %w", inner)

	assert.True(t, Is(outer, CodeUnprocessable))
	assert.False(t, Is(outer, CodeNotFound))
}

func TestIs_MatchesNestedCodes(t *testing.T) {
	inner := New(CodeTimeout, "archive request timed out")
	outer := Wrap(inner, CodeUnavailable, "archive unavailable")

	// Outer code matches, and so does the inner one behind it.
	assert.True(t, Is(outer, CodeUnavailable))
	assert.True(t, Is(outer, CodeTimeout))
	assert.False(t, Is(outer, CodeInternal))
}

func TestIs_UncodedError(t *testing.T) {
	assert.False(t, Is(errors.New("boom"), CodeInternal))
	assert.False(t, Is(nil, CodeInternal))
}

func TestCodeOf(t *testing.T) {
	t.Run("outermost code wins", func(t *testing.T) {
		inner := New(CodeTimeout, "slow")
		outer := Wrap(inner, CodeUnavailable, "down")
		assert.Equal(t, CodeUnavailable, CodeOf(outer))
	})

	t.Run("uncoded errors default to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestMessageOf_NeverLeaksInternalDetail(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.4:5432: connect: connection refused")
	err := Wrap(cause, CodeUnavailable, "storage unavailable")
	assert.Equal(t, "storage unavailable", MessageOf(err))

	assert.Equal(t, "internal error", MessageOf(cause))
}

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code   Code
		status int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnprocessable, http.StatusUnprocessableEntity},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{CodeInvariantViolation, http.StatusInternalServerError},
		{Code("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, ToHTTPStatus(tt.code))
		})
	}
}
