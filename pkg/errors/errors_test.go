package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NotFound("appointment", nil), http.StatusNotFound},
		{Validation("bad input", nil), http.StatusBadRequest},
		{Conflict("already cancelled", nil), http.StatusConflict},
		{Unauthorized(nil), http.StatusUnauthorized},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestHelpersUnwrapThroughWrapping(t *testing.T) {
	base := NotFound("patient", nil)
	wrapped := fmt.Errorf("loading record: %w", base)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("row missing")
	err := NotFound("employee", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "employee")
}
