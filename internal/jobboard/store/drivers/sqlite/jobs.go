package sqlite

import (
	"context"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
)

type jobsRepo struct {
	db dbtx
}

func (r *jobsRepo) GetJobByID(ctx context.Context, id string) (domain.Job, error) {
	var j domain.Job
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, employer_id FROM jobs WHERE id = ?`, id).
		Scan(&j.ID, &j.Title, &j.Description, &j.EmployerID)
	if err != nil {
		return domain.Job{}, mapNotFound(err)
	}
	return j, nil
}

func (r *jobsRepo) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return r.list(ctx, `SELECT id, title, description, employer_id FROM jobs ORDER BY id`)
}

func (r *jobsRepo) ListJobsByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	return r.list(ctx,
		`SELECT id, title, description, employer_id FROM jobs WHERE employer_id = ? ORDER BY id`,
		employerID)
}

func (r *jobsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.EmployerID); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *jobsRepo) CreateJob(ctx context.Context, j domain.Job) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, description, employer_id) VALUES (?, ?, ?, ?)`,
		j.ID, j.Title, j.Description, j.EmployerID)
	return mapConstraint(err)
}

func (r *jobsRepo) UpdateJob(ctx context.Context, j domain.Job) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET title = ?, description = ?, employer_id = ? WHERE id = ?`,
		j.Title, j.Description, j.EmployerID, j.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *jobsRepo) DeleteJob(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
