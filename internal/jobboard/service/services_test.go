package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/service"
)

func TestUserServiceRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := service.UserService{Store: st}

	t.Run("register stores a hash, not the password", func(t *testing.T) {
		user, err := users.Register(ctx, "frank", "frank@example.com", "s3cret-passw0rd")
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, user.Role)
		require.True(t, strings.HasPrefix(user.HashedPassword, "$argon2id$"))
		require.NotContains(t, user.HashedPassword, "s3cret-passw0rd")
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := users.Register(ctx, "frank", "frank2@example.com", "s3cret-passw0rd")
		require.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := users.Register(ctx, "grace", "grace@example.com", "")
		require.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("username too short", func(t *testing.T) {
		_, err := users.Register(ctx, "bob", "bob@example.com", "s3cret-passw0rd")
		require.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("username too long", func(t *testing.T) {
		_, err := users.Register(ctx, "bartholomew-kuma", "bk@example.com", "s3cret-passw0rd")
		require.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("delete then fetch", func(t *testing.T) {
		user, err := users.Register(ctx, "heidi", "heidi@example.com", "s3cret-passw0rd")
		require.NoError(t, err)

		require.NoError(t, users.DeleteUser(ctx, user.ID))
		_, err = users.GetUserByID(ctx, user.ID)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestEmployerService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	employers := service.EmployerService{Store: st}

	t.Run("add and list", func(t *testing.T) {
		created, err := employers.AddEmployer(ctx, "Initech", "hr@initech.example.com", "software")
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		all, err := employers.ListEmployers(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("partial update", func(t *testing.T) {
		created, err := employers.AddEmployer(ctx, "Hooli", "jobs@hooli.example.com", "software")
		require.NoError(t, err)

		industry := "cloud"
		updated, err := employers.UpdateEmployer(ctx, created.ID, nil, nil, &industry)
		require.NoError(t, err)
		require.Equal(t, "Hooli", updated.Name)
		require.Equal(t, "cloud", updated.Industry)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := employers.AddEmployer(ctx, "", "x@example.com", "retail")
		require.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("update unknown employer", func(t *testing.T) {
		name := "Nobody"
		_, err := employers.UpdateEmployer(ctx, "missing-id", &name, nil, nil)
		require.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestJobService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	employers := service.EmployerService{Store: st}
	jobs := service.JobService{Store: st}

	employer, err := employers.AddEmployer(ctx, "Initech", "hr@initech.example.com", "software")
	require.NoError(t, err)

	t.Run("add requires a real employer", func(t *testing.T) {
		_, err := jobs.AddJob(ctx, "Engineer", "builds things", "missing-employer")
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("add, update, delete", func(t *testing.T) {
		job, err := jobs.AddJob(ctx, "Engineer", "builds things", employer.ID)
		require.NoError(t, err)

		title := "Senior Engineer"
		updated, err := jobs.UpdateJob(ctx, job.ID, &title, nil, nil)
		require.NoError(t, err)
		require.Equal(t, "Senior Engineer", updated.Title)
		require.Equal(t, "builds things", updated.Description)

		require.NoError(t, jobs.DeleteJob(ctx, job.ID))
		_, err = jobs.GetJobByID(ctx, job.ID)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("list by employer", func(t *testing.T) {
		_, err := jobs.AddJob(ctx, "Analyst", "", employer.ID)
		require.NoError(t, err)

		byEmployer, err := jobs.ListJobsByEmployer(ctx, employer.ID)
		require.NoError(t, err)
		require.Len(t, byEmployer, 1)
	})
}

func TestApplicationService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	employers := service.EmployerService{Store: st}
	jobs := service.JobService{Store: st}
	applications := service.ApplicationService{Store: st}

	user := registerTestUser(t, st, "ivan", "s3cret-passw0rd")
	employer, err := employers.AddEmployer(ctx, "Initech", "hr@initech.example.com", "software")
	require.NoError(t, err)
	job, err := jobs.AddJob(ctx, "Engineer", "builds things", employer.ID)
	require.NoError(t, err)

	t.Run("apply and list", func(t *testing.T) {
		app, err := applications.Apply(ctx, user.ID, job.ID)
		require.NoError(t, err)
		require.Equal(t, user.ID, app.UserID)
		require.Equal(t, job.ID, app.JobID)

		byUser, err := applications.ListApplicationsByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, byUser, 1)
	})

	t.Run("double apply", func(t *testing.T) {
		_, err := applications.Apply(ctx, user.ID, job.ID)
		require.ErrorIs(t, err, service.ErrBadRequest)
	})

	t.Run("unknown job rolls back", func(t *testing.T) {
		_, err := applications.Apply(ctx, user.ID, "missing-job")
		require.ErrorIs(t, err, service.ErrNotFound)

		byUser, err := applications.ListApplicationsByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, byUser, 1)
	})
}
