package graph

import (
	"errors"

	"github.com/hirewire/jobboard/internal/jobboard/service"
	"github.com/hirewire/jobboard/pkg/jwtx"
)

// gqlError decorates a service error with a machine-readable code surfaced
// in the GraphQL response's error extensions.
type gqlError struct {
	err  error
	code string
}

func (e *gqlError) Error() string { return e.err.Error() }
func (e *gqlError) Unwrap() error { return e.err }

// Extensions is picked up by the GraphQL executor and serialized alongside
// the error message.
func (e *gqlError) Extensions() map[string]any {
	return map[string]any{"code": e.code}
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var code string
	switch {
	case errors.Is(err, service.ErrBadRequest):
		code = "BAD_REQUEST"
	case errors.Is(err, service.ErrForbidden):
		code = "FORBIDDEN"
	case errors.Is(err, service.ErrNotFound):
		code = "NOT_FOUND"
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, jwtx.ErrExpired),
		errors.Is(err, jwtx.ErrClaims),
		errors.Is(err, jwtx.ErrMalformed):
		code = "UNAUTHENTICATED"
	default:
		code = "INTERNAL"
	}
	return &gqlError{err: err, code: code}
}
