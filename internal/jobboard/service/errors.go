package service

import "errors"

var (
	// ErrUnauthorized reports a missing/unusable bearer token or a verified
	// token lacking the claims needed to resolve an identity. The message is
	// deliberately uniform so callers learn nothing about which part failed.
	ErrUnauthorized = errors.New("service: could not validate credentials")

	// ErrInvalidCredentials reports a failed login attempt. Same message for
	// unknown email and wrong password.
	ErrInvalidCredentials = errors.New("service: invalid email or password")

	// ErrNotFound reports a referenced record that does not exist.
	ErrNotFound = errors.New("service: not found")

	// ErrForbidden reports an authenticated caller without sufficient
	// privilege. Distinct from authentication failure.
	ErrForbidden = errors.New("service: not authorized to perform this action")

	// ErrBadRequest reports a malformed call shape, such as a guard argument
	// the caller forgot to supply. A usage error, not an authorization one.
	ErrBadRequest = errors.New("service: bad request")
)
