package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Settings is the immutable signing/verification configuration. It is
// constructed once at startup, validated there, and injected into every
// component that mints or checks tokens. The secret is deliberately never
// part of any log output.
type Settings struct {
	SecretKey string
	Algorithm string // HMAC family only; HS256 in practice

	AccessTokenExpireMinutes  float64
	RefreshTokenExpireMinutes int

	Issuer    string // server URL, the "iss" claim
	Audience  string // server URL + token path, the "aud" claim
	TokenPath string // path of the token endpoint, used for the htu claim

	// MaxRequests bounds how many API calls a minted access token is
	// declared good for (the at_use_nbr claim).
	MaxRequests int
}

// AccessTTL returns the access-token lifetime.
func (s Settings) AccessTTL() time.Duration {
	return time.Duration(s.AccessTokenExpireMinutes * float64(time.Minute))
}

// RefreshTTL returns the refresh-token lifetime.
func (s Settings) RefreshTTL() time.Duration {
	return time.Duration(s.RefreshTokenExpireMinutes) * time.Minute
}

// Validate reports configuration errors. These are fatal at startup; none of
// them can occur per-request.
func (s Settings) Validate() error {
	if s.SecretKey == "" {
		return fmt.Errorf("%w: empty secret key", ErrSigning)
	}
	if _, ok := jwt.GetSigningMethod(s.Algorithm).(*jwt.SigningMethodHMAC); !ok {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrSigning, s.Algorithm)
	}
	if s.AccessTokenExpireMinutes <= 0 {
		return errors.New("jwtx: access token lifetime must be positive")
	}
	if s.RefreshTokenExpireMinutes <= 0 {
		return errors.New("jwtx: refresh token lifetime must be positive")
	}
	if s.Issuer == "" || s.Audience == "" {
		return errors.New("jwtx: issuer and audience are required")
	}
	return nil
}

var (
	// ErrSigning reports an invalid algorithm/key combination. This is a
	// configuration error, not a per-request condition.
	ErrSigning = errors.New("jwtx: signing failed")

	// ErrExpired reports a structurally valid token past its exp claim.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrClaims reports a verified token whose registered claims are not
	// acceptable (wrong audience or issuer, nbf in the future, bad sub).
	ErrClaims = errors.New("jwtx: claims rejected")

	// ErrMalformed reports a token that could not be decoded or whose
	// signature did not verify.
	ErrMalformed = errors.New("jwtx: malformed token")
)

// Encode serializes and signs the payload with the configured HMAC secret.
func Encode(payload TokenPayload, s Settings) (string, error) {
	method := jwt.GetSigningMethod(s.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return "", fmt.Errorf("%w: unsupported algorithm %q", ErrSigning, s.Algorithm)
	}
	if s.SecretKey == "" {
		return "", fmt.Errorf("%w: empty secret key", ErrSigning)
	}

	signed, err := jwt.NewWithClaims(method, payload).SignedString([]byte(s.SecretKey))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// Decode verifies the signature and registered claims of a compact token and
// returns its payload. Expiry is mandatory; audience and issuer must match
// the settings exactly. A future nbf is rejected, while a token without nbf
// is treated as valid from issuance — a deliberately permissive fallback for
// older payload shapes, since the builder always sets nbf.
func Decode(token string, s Settings) (TokenPayload, error) {
	var payload TokenPayload

	_, err := jwt.ParseWithClaims(
		token,
		&payload,
		func(t *jwt.Token) (any, error) { return []byte(s.SecretKey), nil },
		jwt.WithValidMethods([]string{s.Algorithm}),
		jwt.WithAudience(s.Audience),
		jwt.WithIssuer(s.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return TokenPayload{}, mapParseError(err)
	}

	if err := payload.ValidateSubject(); err != nil {
		return TokenPayload{}, fmt.Errorf("%w: %v", ErrClaims, err)
	}
	return payload, nil
}

// mapParseError folds the library's (possibly joined) errors into our
// taxonomy. Expiry wins over other claim complaints so callers can report
// "token expired" precisely.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenNotValidYet),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrClaims, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
