package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChainDetection(t *testing.T) {
	base := NewNotFoundError("profile")

	t.Run("direct", func(t *testing.T) {
		assert.True(t, IsNotFound(base))
		assert.False(t, IsValidation(base))
	})

	t.Run("wrapped with fmt", func(t *testing.T) {
		wrapped := fmt.Errorf("loading caller: %w", base)
		assert.True(t, IsNotFound(wrapped))
		assert.Equal(t, base, GetAppError(wrapped))
	})

	t.Run("plain error is no app error", func(t *testing.T) {
		err := errors.New("boom")
		assert.False(t, IsAppError(err))
		assert.Nil(t, GetAppError(err))
	})
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewStoreUnavailableError("query", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "query")
	assert.Contains(t, err.Error(), "socket closed")
}

func TestHTTPStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NewUnauthorizedError(""), http.StatusUnauthorized},
		{NewNotFoundError("page"), http.StatusNotFound},
		{NewAlreadyExistsError("dup"), http.StatusConflict},
		{NewAlreadyFollowingError("sub-b"), http.StatusConflict},
		{NewNotFollowingError("sub-b"), http.StatusConflict},
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewUnknownTypeError("HOLOGRAM"), http.StatusBadRequest},
		{NewCorruptRecordError("profile", nil), http.StatusInternalServerError},
		{NewStoreUnavailableError("put", nil), http.StatusServiceUnavailable},
		{errors.New("anonymous"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatusFor(tc.err), tc.err.Error())
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "context"))
	})

	t.Run("app error keeps its kind", func(t *testing.T) {
		err := Wrap(NewNotFoundError("component"), "editing component")
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "editing component")
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		err := Wrap(errors.New("boom"), "saving post")
		assert.True(t, IsType(err, ErrorTypeInternal))
		assert.ErrorIs(t, err, GetAppError(err).Cause)
	})
}
