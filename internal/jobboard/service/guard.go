package service

import (
	"context"
	"fmt"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/pkg/httpx"
)

// Args carries a protected operation's named arguments. Guards may inspect
// them but always pass them through to the wrapped operation unchanged.
type Args map[string]any

// Operation is a protected unit of work, typically the body of a GraphQL
// resolver.
type Operation func(ctx context.Context, args Args) (any, error)

// Authenticator resolves a bearer token into the current user row. Satisfied
// by *AuthService; narrow so guard tests can fake it.
type Authenticator interface {
	AuthenticateUser(ctx context.Context, token string) (domain.User, error)
}

type identityCtxKey struct{}

// WithIdentity attaches a resolved identity to the context.
func WithIdentity(ctx context.Context, id domain.AuthenticatedIdentity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext returns the identity a guard resolved for this call.
func IdentityFromContext(ctx context.Context) (domain.AuthenticatedIdentity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(domain.AuthenticatedIdentity)
	return id, ok
}

// resolve runs the shared front half of every guard: pull the bearer token
// from the context and exchange it for the live user row. Errors from the
// authenticator propagate untouched.
func resolve(ctx context.Context, auth Authenticator) (domain.User, error) {
	return auth.AuthenticateUser(ctx, httpx.BearerFromContext(ctx))
}

// RequireAuthenticated wraps op so it only runs for a caller whose bearer
// token resolves to a live user. The resolved identity is attached to the
// context; args reach op unmodified.
func RequireAuthenticated(auth Authenticator, op Operation) Operation {
	return func(ctx context.Context, args Args) (any, error) {
		user, err := resolve(ctx, auth)
		if err != nil {
			return nil, err
		}
		return op(withUserIdentity(ctx, user), args)
	}
}

// RequireAdmin additionally requires the resolved user's current role to be
// admin. The role comes from the freshly fetched row, so a demotion takes
// effect on the very next call.
func RequireAdmin(auth Authenticator, op Operation) Operation {
	return func(ctx context.Context, args Args) (any, error) {
		user, err := resolve(ctx, auth)
		if err != nil {
			return nil, err
		}
		if user.Role != domain.RoleAdmin {
			return nil, ErrForbidden
		}
		return op(withUserIdentity(ctx, user), args)
	}
}

// RequireSameUser additionally requires the operation's "user_id" argument
// to name the caller. A missing argument is a caller bug, reported as a
// distinct bad-request error rather than an authorization failure.
func RequireSameUser(auth Authenticator, op Operation) Operation {
	return func(ctx context.Context, args Args) (any, error) {
		user, err := resolve(ctx, auth)
		if err != nil {
			return nil, err
		}

		raw, ok := args["user_id"]
		if !ok {
			return nil, fmt.Errorf("%w: no user ID provided", ErrBadRequest)
		}
		userID, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: no user ID provided", ErrBadRequest)
		}
		if userID != user.ID {
			return nil, ErrForbidden
		}
		return op(withUserIdentity(ctx, user), args)
	}
}

func withUserIdentity(ctx context.Context, user domain.User) context.Context {
	return WithIdentity(ctx, domain.AuthenticatedIdentity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
