package store

import (
	"context"
	"errors"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep concerns tidy and
// let services depend on exactly the tables they touch.
type Store interface {
	Users() Users
	Employers() Employers
	Jobs() Jobs
	Applications() Applications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by its UUID.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is the identity resolver's lookup.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is the login lookup.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns all users ordered by creation time.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via UUID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the hashed_password and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// UpdateUserRole changes a user's role and bumps updated_at.
	UpdateUserRole(ctx context.Context, userID, role string) error

	// DeleteUser cascades to applications (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Employers interface {
	GetEmployerByID(ctx context.Context, id string) (domain.Employer, error)
	ListEmployers(ctx context.Context) ([]domain.Employer, error)
	CreateEmployer(ctx context.Context, e domain.Employer) error

	// UpdateEmployer overwrites name, contact_email and industry.
	UpdateEmployer(ctx context.Context, e domain.Employer) error

	// DeleteEmployer cascades to jobs (per schema).
	DeleteEmployer(ctx context.Context, id string) error
}

type Jobs interface {
	GetJobByID(ctx context.Context, id string) (domain.Job, error)
	ListJobs(ctx context.Context) ([]domain.Job, error)
	ListJobsByEmployer(ctx context.Context, employerID string) ([]domain.Job, error)
	CreateJob(ctx context.Context, j domain.Job) error
	UpdateJob(ctx context.Context, j domain.Job) error

	// DeleteJob cascades to applications (per schema).
	DeleteJob(ctx context.Context, id string) error
}

type Applications interface {
	GetApplicationByID(ctx context.Context, id string) (domain.Application, error)
	ListApplicationsByUser(ctx context.Context, userID string) ([]domain.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	CreateApplication(ctx context.Context, a domain.Application) error
	DeleteApplication(ctx context.Context, id string) error
}
