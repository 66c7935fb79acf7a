package sqlite

import (
	"context"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
)

type employersRepo struct {
	db dbtx
}

func (r *employersRepo) GetEmployerByID(ctx context.Context, id string) (domain.Employer, error) {
	var e domain.Employer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, contact_email, industry FROM employers WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.ContactEmail, &e.Industry)
	if err != nil {
		return domain.Employer{}, mapNotFound(err)
	}
	return e, nil
}

func (r *employersRepo) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, contact_email, industry FROM employers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Employer
	for rows.Next() {
		var e domain.Employer
		if err := rows.Scan(&e.ID, &e.Name, &e.ContactEmail, &e.Industry); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *employersRepo) CreateEmployer(ctx context.Context, e domain.Employer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employers (id, name, contact_email, industry) VALUES (?, ?, ?, ?)`,
		e.ID, e.Name, e.ContactEmail, e.Industry)
	return mapConstraint(err)
}

func (r *employersRepo) UpdateEmployer(ctx context.Context, e domain.Employer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employers SET name = ?, contact_email = ?, industry = ? WHERE id = ?`,
		e.Name, e.ContactEmail, e.Industry, e.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *employersRepo) DeleteEmployer(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
