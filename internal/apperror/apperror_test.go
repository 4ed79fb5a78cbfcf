package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{Validation("name is required"), 400},
		{Auth("missing token"), 401},
		{Forbidden("invalid token"), 403},
		{NotFound("section not found"), 404},
		{Conflict("user already exists"), 409},
		{Internal(errors.New("boom")), 500},
	}

	for _, c := range cases {
		assert.Equal(t, c.status, c.err.Status(), c.err.Message)
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFoundCode(CodeUserNotFound, "user not found", "this email is not registered")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, CodeUserNotFound, err.Code)
	assert.Equal(t, "user not found", err.Error())
}

func TestInternalSuppressesNothingItself(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))

	// The raw detail is kept on the error; the HTTP layer decides whether
	// to expose it based on the environment.
	assert.Equal(t, "internal server error", err.Message)
	assert.Equal(t, "pq: connection refused", err.Detail)
}
