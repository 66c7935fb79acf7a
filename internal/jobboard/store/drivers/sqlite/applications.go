package sqlite

import (
	"context"
	"time"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
)

type applicationsRepo struct {
	db dbtx
}

func (r *applicationsRepo) GetApplicationByID(ctx context.Context, id string) (domain.Application, error) {
	var a domain.Application
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, job_id, applied_at FROM applications WHERE id = ?`, id).
		Scan(&a.ID, &a.UserID, &a.JobID, &a.AppliedAt)
	if err != nil {
		return domain.Application{}, mapNotFound(err)
	}
	return a, nil
}

func (r *applicationsRepo) ListApplicationsByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	return r.list(ctx,
		`SELECT id, user_id, job_id, applied_at FROM applications WHERE user_id = ? ORDER BY id`,
		userID)
}

func (r *applicationsRepo) ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	return r.list(ctx,
		`SELECT id, user_id, job_id, applied_at FROM applications WHERE job_id = ? ORDER BY id`,
		jobID)
}

func (r *applicationsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.UserID, &a.JobID, &a.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *applicationsRepo) CreateApplication(ctx context.Context, a domain.Application) error {
	appliedAt := a.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (id, user_id, job_id, applied_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.UserID, a.JobID, appliedAt)
	return mapConstraint(err)
}

func (r *applicationsRepo) DeleteApplication(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
