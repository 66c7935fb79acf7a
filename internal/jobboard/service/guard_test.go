package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/service"
	"github.com/hirewire/jobboard/pkg/httpx"
)

// fakeAuthenticator returns a canned user keyed by token, or a canned error.
type fakeAuthenticator struct {
	users map[string]domain.User
	err   error
}

func (f *fakeAuthenticator) AuthenticateUser(_ context.Context, token string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	user, ok := f.users[token]
	if !ok {
		return domain.User{}, service.ErrUnauthorized
	}
	return user, nil
}

func bearerCtx(token string) context.Context {
	return httpx.WithBearerToken(context.Background(), token)
}

// recordingOp captures whether the wrapped operation ran and what it saw.
type recordingOp struct {
	called bool
	args   service.Args
	ctx    context.Context
}

func (r *recordingOp) op(ctx context.Context, args service.Args) (any, error) {
	r.called = true
	r.args = args
	r.ctx = ctx
	return "ok", nil
}

func TestRequireAuthenticated(t *testing.T) {
	t.Parallel()

	alice := domain.User{ID: "id-alice", Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}
	auth := &fakeAuthenticator{users: map[string]domain.User{"tok-alice": alice}}

	t.Run("resolved identity reaches the operation", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireAuthenticated(auth, rec.op)

		out, err := guarded(bearerCtx("tok-alice"), service.Args{"x": 1})
		require.NoError(t, err)
		require.Equal(t, "ok", out)
		require.True(t, rec.called)

		identity, ok := service.IdentityFromContext(rec.ctx)
		require.True(t, ok)
		require.Equal(t, "id-alice", identity.ID)
		require.Equal(t, "alice", identity.Username)
	})

	t.Run("resolver failure skips the operation", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireAuthenticated(auth, rec.op)

		_, err := guarded(bearerCtx("tok-unknown"), nil)
		require.ErrorIs(t, err, service.ErrUnauthorized)
		require.False(t, rec.called)
	})

	t.Run("resolver errors propagate untouched", func(t *testing.T) {
		boom := errors.New("db down")
		var rec recordingOp
		guarded := service.RequireAuthenticated(&fakeAuthenticator{err: boom}, rec.op)

		_, err := guarded(bearerCtx("tok-alice"), nil)
		require.ErrorIs(t, err, boom)
		require.False(t, rec.called)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthenticator{users: map[string]domain.User{
		"tok-admin": {ID: "id-root", Username: "root", Role: domain.RoleAdmin},
		"tok-plain": {ID: "id-plain", Username: "plain", Role: domain.RoleUser},
	}}

	t.Run("admin passes through", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireAdmin(auth, rec.op)

		out, err := guarded(bearerCtx("tok-admin"), service.Args{"job_id": "j1"})
		require.NoError(t, err)
		require.Equal(t, "ok", out)
		require.Equal(t, service.Args{"job_id": "j1"}, rec.args)
	})

	t.Run("non-admin never invokes the operation", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireAdmin(auth, rec.op)

		_, err := guarded(bearerCtx("tok-plain"), nil)
		require.ErrorIs(t, err, service.ErrForbidden)
		require.False(t, rec.called)
	})
}

func TestRequireSameUser(t *testing.T) {
	t.Parallel()

	auth := &fakeAuthenticator{users: map[string]domain.User{
		"tok-nine": {ID: "9", Username: "nine", Role: domain.RoleUser},
	}}

	t.Run("matching user_id passes args through unmodified", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireSameUser(auth, rec.op)

		args := service.Args{"user_id": "9", "job_id": "j1"}
		out, err := guarded(bearerCtx("tok-nine"), args)
		require.NoError(t, err)
		require.Equal(t, "ok", out)
		require.Equal(t, args, rec.args)
	})

	t.Run("mismatched user_id is forbidden", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireSameUser(auth, rec.op)

		_, err := guarded(bearerCtx("tok-nine"), service.Args{"user_id": "7"})
		require.ErrorIs(t, err, service.ErrForbidden)
		require.False(t, rec.called)
	})

	t.Run("missing user_id is a bad request", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireSameUser(auth, rec.op)

		_, err := guarded(bearerCtx("tok-nine"), service.Args{})
		require.ErrorIs(t, err, service.ErrBadRequest)
		require.ErrorContains(t, err, "no user ID provided")
		require.False(t, rec.called)
	})

	t.Run("non-string user_id is a bad request", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireSameUser(auth, rec.op)

		_, err := guarded(bearerCtx("tok-nine"), service.Args{"user_id": 9})
		require.ErrorIs(t, err, service.ErrBadRequest)
		require.False(t, rec.called)
	})

	t.Run("authorization happens before argument checks", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireSameUser(auth, rec.op)

		_, err := guarded(bearerCtx("tok-unknown"), service.Args{})
		require.ErrorIs(t, err, service.ErrUnauthorized)
		require.False(t, rec.called)
	})
}

// The guards compose with the real resolver end to end.
func TestGuardsWithAuthService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	auth := service.NewAuthService(st, testSettings())

	user := registerTestUser(t, st, "erin", "s3cret-passw0rd")
	pair, err := auth.Login(ctx, user.Email, "s3cret-passw0rd")
	require.NoError(t, err)

	t.Run("fresh role decides the admin gate", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireAdmin(auth, rec.op)

		_, err := guarded(bearerCtx(pair.AccessToken), nil)
		require.ErrorIs(t, err, service.ErrForbidden)
		require.False(t, rec.called)

		require.NoError(t, st.Users().UpdateUserRole(ctx, user.ID, domain.RoleAdmin))

		out, err := guarded(bearerCtx(pair.AccessToken), nil)
		require.NoError(t, err)
		require.Equal(t, "ok", out)
	})

	t.Run("same-user gate against the real identity", func(t *testing.T) {
		var rec recordingOp
		guarded := service.RequireSameUser(auth, rec.op)

		out, err := guarded(bearerCtx(pair.AccessToken), service.Args{"user_id": user.ID})
		require.NoError(t, err)
		require.Equal(t, "ok", out)

		_, err = guarded(bearerCtx(pair.AccessToken), service.Args{"user_id": "someone-else"})
		require.ErrorIs(t, err, service.ErrForbidden)
	})
}
