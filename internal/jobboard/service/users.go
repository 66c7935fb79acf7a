package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/pkg/cryptox"
	"github.com/hirewire/jobboard/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// Username length bounds, also enforced by a CHECK constraint on the lower
// bound. Validated here so callers get ErrBadRequest, not a driver error.
const (
	minUsernameLen = 4
	maxUsernameLen = 15
)

// Register creates a user with a freshly hashed password. The plaintext is
// never stored and never logged.
func (s *UserService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	if username == "" || email == "" {
		return domain.User{}, fmt.Errorf("%w: username and email are required", ErrBadRequest)
	}
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return domain.User{}, fmt.Errorf("%w: username must be %d to %d characters",
			ErrBadRequest, minUsernameLen, maxUsernameLen)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordLength) {
			return domain.User{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return domain.User{}, err
	}

	user := domain.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		Role:           domain.RoleUser,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fmt.Errorf("%w: username or email already taken", ErrBadRequest)
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapStoreErr(err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	slogx.FromContext(ctx).Info("user deleted", "user_id", id)
	return nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
