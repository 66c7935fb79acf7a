package sqlite

import (
	"context"
	"database/sql"

	"github.com/hirewire/jobboard/internal/jobboard/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits/rolls back; outer DB stays open

// Ping is a no-op inside a transaction; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users               { return &usersRepo{db: t.tx} }
func (t *txStore) Employers() store.Employers       { return &employersRepo{db: t.tx} }
func (t *txStore) Jobs() store.Jobs                 { return &jobsRepo{db: t.tx} }
func (t *txStore) Applications() store.Applications { return &applicationsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts
