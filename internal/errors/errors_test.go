package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"missing fields", ErrMissingFields, http.StatusBadRequest, "MISSING_FIELDS"},
		{"password mismatch", ErrPasswordMismatch, http.StatusBadRequest, "PASSWORD_MISMATCH"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"email taken", ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"post not found", ErrPostNotFound, http.StatusNotFound, "POST_NOT_FOUND"},
		{"comment not found", ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
			assert.Equal(t, tt.err.Error(), httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_UnknownErrorIsOpaque(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("dsn: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
	assert.Equal(t, "internal server error", httpErr.Message)
}
