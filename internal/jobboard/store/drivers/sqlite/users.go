package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, hashed_password, role, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var updatedAt sql.NullTime
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			u.UpdatedAt = &t
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, hashed_password, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.HashedPassword, u.Role, createdAt)
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET hashed_password = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateUserRole(ctx context.Context, userID, role string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		role, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var updatedAt sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt, &updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		u.UpdatedAt = &t
	}
	return u, nil
}
