package jwtx

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Scope discriminates what a token is good for and which expiry window was
// used to mint it.
type Scope string

const (
	ScopeAccess  Scope = "access"
	ScopeRefresh Scope = "refresh"
)

// SubPrefix is the fixed prefix of the "sub" claim; the remainder is the
// user's UUIDv4.
const SubPrefix = "username:"

// subPattern validates "username:<uuid4>". Kept strict so a forged or
// truncated subject never survives decoding.
var subPattern = regexp.MustCompile(
	`^username:[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`,
)

// ErrSubject reports a missing or malformed "sub" claim.
var ErrSubject = errors.New("jwtx: invalid subject claim")

// TokenPayload is the full claim set carried by our signed tokens:
// registered claims plus the public identity claims and the private
// authorization claims the original API contract defines.
type TokenPayload struct {
	jwt.RegisteredClaims

	// Public identity claims, mirrored from the user record at mint time.
	Email             string           `json:"email"`
	Nickname          string           `json:"nickname"`
	PreferredUsername string           `json:"preferred_username"`
	UpdatedAt         *jwt.NumericDate `json:"updated_at,omitempty"`

	// Private claims.
	SID           string   `json:"sid"`
	Scope         Scope    `json:"scope"`
	ATUseNbr      int      `json:"at_use_nbr,omitempty"`
	Nationalities []string `json:"nationalities,omitempty"`
	HTM           string   `json:"htm,omitempty"`
	HTU           string   `json:"htu,omitempty"`
}

// UserID strips the subject prefix and returns the bare user UUID.
func (p *TokenPayload) UserID() string {
	if !subPattern.MatchString(p.Subject) {
		return ""
	}
	return p.Subject[len(SubPrefix):]
}

// ValidateSubject enforces the "username:<uuid4>" form of the sub claim.
func (p *TokenPayload) ValidateSubject() error {
	if p.Subject == "" {
		return fmt.Errorf("%w: empty", ErrSubject)
	}
	if !subPattern.MatchString(p.Subject) {
		return fmt.Errorf("%w: %q", ErrSubject, p.Subject)
	}
	return nil
}

// SubjectInfo is the slice of a user record the claims builder needs. All
// three identifying fields are mandatory.
type SubjectInfo struct {
	ID        string // UUIDv4
	Username  string
	Email     string
	UpdatedAt *time.Time
}

// NewPayload assembles a TokenPayload for the given user and scope. It is a
// pure function of its inputs and now: nbf = now-1s, iat = now, exp = now
// plus the scope's configured lifetime. jti and sid are freshly generated.
func NewPayload(s Settings, user SubjectInfo, scope Scope, now time.Time) (TokenPayload, error) {
	if user.ID == "" || user.Username == "" || user.Email == "" {
		return TokenPayload{}, errors.New("jwtx: subject requires id, username and email")
	}

	ttl := s.AccessTTL()
	if scope == ScopeRefresh {
		ttl = s.RefreshTTL()
	}

	now = now.UTC()
	var updatedAt *jwt.NumericDate
	if user.UpdatedAt != nil {
		updatedAt = jwt.NewNumericDate(*user.UpdatedAt)
	}

	payload := TokenPayload{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   SubPrefix + user.ID,
			Audience:  jwt.ClaimStrings{s.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Second)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Email:             user.Email,
		Nickname:          user.Username,
		PreferredUsername: user.Username,
		UpdatedAt:         updatedAt,
		SID:               uuid.NewString(),
		Scope:             scope,
		ATUseNbr:          s.MaxRequests,
		Nationalities:     []string{"ECU"},
		HTM:               "POST",
		HTU:               s.Issuer + s.TokenPath,
	}

	if err := payload.ValidateSubject(); err != nil {
		return TokenPayload{}, err
	}
	return payload, nil
}
