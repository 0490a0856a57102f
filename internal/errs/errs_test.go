package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)))
}

func TestConstructors(t *testing.T) {
	custom := "ACTOR_ALREADY_EXISTS"

	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("no token", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"bad request custom code", NewBadRequestError("dup", true, &custom, nil, nil), http.StatusBadRequest, custom},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"method not allowed", NewMethodNotAllowedError("no"), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"unprocessable", NewUnprocessableEntityError("invalid", false, nil, nil), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestHTTPError_IsAndWrap(t *testing.T) {
	base := NewNotFoundError("Actor not found", true, nil)
	wrapped := fmt.Errorf("loading actor: %w", base)

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var target *HTTPError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "Actor not found", target.Error())
}

func TestHTTPError_WithMessage(t *testing.T) {
	base := NewUnprocessableEntityError("Validation failed", true, nil, []FieldError{{Field: "name", Error: "is required"}})
	copied := base.WithMessage("Request could not be processed.")

	assert.Equal(t, "Validation failed", base.Message)
	assert.Equal(t, "Request could not be processed.", copied.Message)
	assert.Equal(t, base.Errors, copied.Errors)
	assert.Equal(t, base.Status, copied.Status)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(NewForbiddenError("Request is forbidden.", true))

	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusForbidden, resp.Error)
	assert.Equal(t, "FORBIDDEN", resp.Code)
	assert.True(t, resp.Override)
}
