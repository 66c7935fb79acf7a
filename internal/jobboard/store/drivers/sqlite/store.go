package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/hirewire/jobboard/internal/jobboard/store"

	_ "modernc.org/sqlite"
)

// dbtx is the common surface of *sql.DB and *sql.Tx the repos run on.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite serializes writers anyway, and a single connection keeps the
	// pragma below in force and makes ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	// Enforce FKs so deletes cascade per schema
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx}, nil
}

// WithTx executes fn within a transaction, automatically handling
// commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users               { return &usersRepo{db: s.db} }
func (s *Store) Employers() store.Employers       { return &employersRepo{db: s.db} }
func (s *Store) Jobs() store.Jobs                 { return &jobsRepo{db: s.db} }
func (s *Store) Applications() store.Applications { return &applicationsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// requireRow maps zero affected rows to store.ErrNotFound for updates and
// deletes that target a single record.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// mapConstraint turns sqlite unique-constraint violations into
// store.ErrAlreadyExists so services don't parse driver messages.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}
