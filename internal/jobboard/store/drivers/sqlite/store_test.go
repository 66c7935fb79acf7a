package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser() domain.User {
	id := uuid.NewString()
	return domain.User{
		ID:             id,
		Username:       "user_" + id[:8],
		Email:          id[:8] + "@example.com",
		HashedPassword: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Role:           domain.RoleUser,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("empty store", func(t *testing.T) {
		empty, err := s.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)

		_, err = s.Users().GetUserByID(ctx, uuid.NewString())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	user := newTestUser()

	t.Run("create and fetch", func(t *testing.T) {
		require.NoError(t, s.Users().CreateUser(ctx, user))

		got, err := s.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Username, got.Username)
		require.Equal(t, user.Email, got.Email)
		require.Equal(t, user.Role, got.Role)
		require.Nil(t, got.UpdatedAt)

		byName, err := s.Users().GetUserByUsername(ctx, user.Username)
		require.NoError(t, err)
		require.Equal(t, user.ID, byName.ID)

		byEmail, err := s.Users().GetUserByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		dup := newTestUser()
		dup.Username = user.Username
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("password update bumps updated_at", func(t *testing.T) {
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, user.ID, "$argon2id$v=19$m=65536,t=3,p=4$bmV3$bmV3"))

		got, err := s.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, got.UpdatedAt)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Users().DeleteUser(ctx, user.ID))
		_, err := s.Users().GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Users().DeleteUser(ctx, user.ID), store.ErrNotFound)
	})
}

func TestJobBoardRepos(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	employer := domain.Employer{
		ID:           idx.New().String(),
		Name:         "Initech",
		ContactEmail: "jobs@initech.example.com",
		Industry:     "Software",
	}
	require.NoError(t, s.Employers().CreateEmployer(ctx, employer))

	job := domain.Job{
		ID:          idx.New().String(),
		Title:       "Staff Engineer",
		Description: "TPS report automation",
		EmployerID:  employer.ID,
	}
	require.NoError(t, s.Jobs().CreateJob(ctx, job))

	user := newTestUser()
	require.NoError(t, s.Users().CreateUser(ctx, user))

	app := domain.Application{
		ID:     idx.New().String(),
		UserID: user.ID,
		JobID:  job.ID,
	}
	require.NoError(t, s.Applications().CreateApplication(ctx, app))

	t.Run("lists", func(t *testing.T) {
		employers, err := s.Employers().ListEmployers(ctx)
		require.NoError(t, err)
		require.Len(t, employers, 1)

		jobs, err := s.Jobs().ListJobsByEmployer(ctx, employer.ID)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		require.Equal(t, job.Title, jobs[0].Title)

		apps, err := s.Applications().ListApplicationsByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, apps, 1)
		require.False(t, apps[0].AppliedAt.IsZero())
	})

	t.Run("duplicate application rejected", func(t *testing.T) {
		dup := domain.Application{ID: idx.New().String(), UserID: user.ID, JobID: job.ID}
		require.ErrorIs(t, s.Applications().CreateApplication(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("update employer and job", func(t *testing.T) {
		employer.Industry = "Fintech"
		require.NoError(t, s.Employers().UpdateEmployer(ctx, employer))

		got, err := s.Employers().GetEmployerByID(ctx, employer.ID)
		require.NoError(t, err)
		require.Equal(t, "Fintech", got.Industry)

		job.Title = "Principal Engineer"
		require.NoError(t, s.Jobs().UpdateJob(ctx, job))

		gotJob, err := s.Jobs().GetJobByID(ctx, job.ID)
		require.NoError(t, err)
		require.Equal(t, "Principal Engineer", gotJob.Title)
	})

	t.Run("deleting employer cascades to jobs and applications", func(t *testing.T) {
		require.NoError(t, s.Employers().DeleteEmployer(ctx, employer.ID))

		_, err := s.Jobs().GetJobByID(ctx, job.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		apps, err := s.Applications().ListApplicationsByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Empty(t, apps)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("rolls back on error", func(t *testing.T) {
		user := newTestUser()
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return err
			}
			return context.Canceled // force rollback
		})
		require.Error(t, err)

		_, err = s.Users().GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commits on success", func(t *testing.T) {
		user := newTestUser()
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().CreateUser(ctx, user)
		})
		require.NoError(t, err)

		_, err = s.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
	})
}
