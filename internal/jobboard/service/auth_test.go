package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/service"
	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/internal/jobboard/store/drivers/sqlite"
	"github.com/hirewire/jobboard/pkg/jwtx"
)

func testSettings() jwtx.Settings {
	return jwtx.Settings{
		SecretKey:                 "test-secret-key-not-for-production",
		Algorithm:                 "HS256",
		AccessTokenExpireMinutes:  30,
		RefreshTokenExpireMinutes: 10080,
		Issuer:                    "http://localhost:8000",
		Audience:                  "http://localhost:8000/api/v1/auth/login",
		TokenPath:                 "/api/v1/auth/login",
		MaxRequests:               30,
	}
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// registerTestUser creates a user through the real registration path so the
// stored hash is a genuine argon2id digest of the given password.
func registerTestUser(t *testing.T, st store.Store, username, password string) domain.User {
	t.Helper()

	users := service.UserService{Store: st}
	user, err := users.Register(context.Background(), username, username+"@example.com", password)
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := service.NewAuthService(st, testSettings())
	user := registerTestUser(t, st, "alice", "s3cret-passw0rd")

	t.Run("valid credentials mint a pair", func(t *testing.T) {
		pair, err := auth.Login(ctx, user.Email, "s3cret-passw0rd")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, "Bearer", pair.TokenType)
		require.Equal(t, int64(30*60), pair.ExpiresIn)

		// Decoding the freshly minted access token resolves straight back
		// to the user who logged in.
		identity, err := auth.Authenticate(ctx, pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, identity.ID)
		require.Equal(t, user.Username, identity.Username)
		require.Equal(t, user.Email, identity.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, user.Email, "wrong-password")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email looks identical to wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "nobody@example.com", "s3cret-passw0rd")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := service.NewAuthService(st, testSettings())
	user := registerTestUser(t, st, "bobby", "s3cret-passw0rd")

	pair, err := auth.Login(ctx, user.Email, "s3cret-passw0rd")
	require.NoError(t, err)

	t.Run("refresh token mints a fresh pair", func(t *testing.T) {
		fresh, err := auth.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, fresh.AccessToken)
		require.NotEmpty(t, fresh.RefreshToken)
	})

	t.Run("access token rejected for refresh", func(t *testing.T) {
		_, err := auth.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := auth.Refresh(ctx, "not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		victim := registerTestUser(t, st, "mallory", "s3cret-passw0rd")
		victimPair, err := auth.Login(ctx, victim.Email, "s3cret-passw0rd")
		require.NoError(t, err)

		require.NoError(t, st.Users().DeleteUser(ctx, victim.ID))

		_, err = auth.Refresh(ctx, victimPair.RefreshToken)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := service.NewAuthService(st, testSettings())
	user := registerTestUser(t, st, "carol", "s3cret-passw0rd")

	pair, err := auth.Login(ctx, user.Email, "s3cret-passw0rd")
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "")
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		stale := service.NewAuthService(st, testSettings())
		stale.SetNow(func() time.Time { return time.Now().Add(-2 * time.Hour) })

		oldPair, err := stale.Login(ctx, user.Email, "s3cret-passw0rd")
		require.NoError(t, err)

		_, err = auth.Authenticate(ctx, oldPair.AccessToken)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("identity reflects the current row", func(t *testing.T) {
		got, err := auth.AuthenticateUser(ctx, pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, got.Role)

		// Role changes land without reissuing the token because the row is
		// re-fetched on every call.
		require.NoError(t, st.Users().UpdateUserRole(ctx, user.ID, domain.RoleAdmin))

		got, err = auth.AuthenticateUser(ctx, pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, got.Role)
	})

	t.Run("deleted user", func(t *testing.T) {
		victim := registerTestUser(t, st, "dave", "s3cret-passw0rd")
		victimPair, err := auth.Login(ctx, victim.Email, "s3cret-passw0rd")
		require.NoError(t, err)

		require.NoError(t, st.Users().DeleteUser(ctx, victim.ID))

		_, err = auth.Authenticate(ctx, victimPair.AccessToken)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}
