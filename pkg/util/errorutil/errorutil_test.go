package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughWrappedDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", NewInvalidCredentials())

	got := ToDomainError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, CodeInvalidCredentials, got.Code)
	assert.Equal(t, http.StatusUnauthorized, got.HTTPStatus)
}

func TestToDomainError_HidesUnknownCauses(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")

	got := ToDomainError(cause)
	require.NotNil(t, got)
	assert.Equal(t, CodeInternal, got.Code)
	assert.Equal(t, "internal server error", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestCodeForStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          CodeValidationFailed,
		http.StatusUnauthorized:        CodeUnauthorized,
		http.StatusForbidden:           CodeForbidden,
		http.StatusNotFound:            CodeNotFound,
		http.StatusConflict:            CodeConflict,
		http.StatusServiceUnavailable:  CodeInternal,
		http.StatusInternalServerError: CodeInternal,
	}
	for status, want := range cases {
		assert.Equal(t, want, CodeForStatus(status), "status %d", status)
	}
}
