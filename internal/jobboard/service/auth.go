package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/pkg/cryptox"
	"github.com/hirewire/jobboard/pkg/jwtx"
	"github.com/hirewire/jobboard/pkg/slogx"
)

// AuthService owns credential checking, token issuance and per-request
// identity resolution. Settings are injected once at construction and never
// mutated, so the service is safe for unsynchronized concurrent use.
type AuthService struct {
	Store    store.Store
	Settings jwtx.Settings

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewAuthService(st store.Store, settings jwtx.Settings) *AuthService {
	return &AuthService{Store: st, Settings: settings, now: time.Now}
}

// SetNow overrides the clock used when minting tokens. Tests use this to
// issue tokens in the past.
func (s *AuthService) SetNow(now func() time.Time) {
	s.now = now
}

// Login verifies the email/password pair and returns a fresh access+refresh
// token pair. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	ok, err := cryptox.VerifyPassword(user.HashedPassword, password)
	if err != nil {
		// Stored hash is corrupt; a data problem, not a login failure.
		return domain.TokenPair{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		log.Info("login rejected", "user_id", user.ID)
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.mintPair(user)
	if err != nil {
		return domain.TokenPair{}, err
	}

	log.Info("login succeeded", "user_id", user.ID)
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The user row is
// re-fetched so a deleted account cannot keep refreshing.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	payload, err := jwtx.Decode(refreshToken, s.Settings)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if payload.Scope != jwtx.ScopeRefresh {
		return domain.TokenPair{}, fmt.Errorf("%w: access token presented for refresh", ErrUnauthorized)
	}

	user, err := s.lookupSubject(ctx, payload)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return s.mintPair(user)
}

// Authenticate resolves a bearer token into an authenticated identity.
// Claims are used only to locate the user row; the returned identity is
// built from the freshly fetched record so profile and role changes take
// effect without forcing logout.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.AuthenticatedIdentity, error) {
	user, err := s.AuthenticateUser(ctx, token)
	if err != nil {
		return domain.AuthenticatedIdentity{}, err
	}
	return domain.AuthenticatedIdentity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// AuthenticateUser is Authenticate for callers that also need the row's
// current role. Read-only and idempotent: safe to retry, never writes.
func (s *AuthService) AuthenticateUser(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	payload, err := jwtx.Decode(token, s.Settings)
	if err != nil {
		return domain.User{}, err
	}
	return s.lookupSubject(ctx, payload)
}

func (s *AuthService) lookupSubject(ctx context.Context, payload jwtx.TokenPayload) (domain.User, error) {
	if payload.PreferredUsername == "" || payload.Subject == "" {
		return domain.User{}, fmt.Errorf("%w: token missing identity claims", ErrUnauthorized)
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, payload.PreferredUsername)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Neutral detail: don't confirm whether the account ever existed.
			return domain.User{}, fmt.Errorf("%w: could not validate credentials", ErrNotFound)
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AuthService) mintPair(user domain.User) (domain.TokenPair, error) {
	subject := jwtx.SubjectInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		UpdatedAt: user.UpdatedAt,
	}
	now := s.now().UTC()

	accessPayload, err := jwtx.NewPayload(s.Settings, subject, jwtx.ScopeAccess, now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	access, err := jwtx.Encode(accessPayload, s.Settings)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refreshPayload, err := jwtx.NewPayload(s.Settings, subject, jwtx.ScopeRefresh, now)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := jwtx.Encode(refreshPayload, s.Settings)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.Settings.AccessTTL().Seconds()),
	}, nil
}
