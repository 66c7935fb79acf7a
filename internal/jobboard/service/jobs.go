package service

import (
	"context"
	"fmt"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/pkg/idx"
)

type JobService struct {
	Store store.Store
}

func (s *JobService) AddJob(ctx context.Context, title, description, employerID string) (domain.Job, error) {
	if title == "" || employerID == "" {
		return domain.Job{}, fmt.Errorf("%w: title and employer are required", ErrBadRequest)
	}

	// Fail with a clean not-found instead of a foreign-key violation.
	if _, err := s.Store.Employers().GetEmployerByID(ctx, employerID); err != nil {
		return domain.Job{}, mapStoreErr(err)
	}

	job := domain.Job{
		ID:          idx.New().String(),
		Title:       title,
		Description: description,
		EmployerID:  employerID,
	}
	if err := s.Store.Jobs().CreateJob(ctx, job); err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

// UpdateJob applies the non-nil fields onto the stored record.
func (s *JobService) UpdateJob(ctx context.Context, id string, title, description, employerID *string) (domain.Job, error) {
	job, err := s.Store.Jobs().GetJobByID(ctx, id)
	if err != nil {
		return domain.Job{}, mapStoreErr(err)
	}

	if title != nil {
		job.Title = *title
	}
	if description != nil {
		job.Description = *description
	}
	if employerID != nil {
		if _, err := s.Store.Employers().GetEmployerByID(ctx, *employerID); err != nil {
			return domain.Job{}, mapStoreErr(err)
		}
		job.EmployerID = *employerID
	}

	if err := s.Store.Jobs().UpdateJob(ctx, job); err != nil {
		return domain.Job{}, mapStoreErr(err)
	}
	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Jobs().DeleteJob(ctx, id))
}

func (s *JobService) GetJobByID(ctx context.Context, id string) (domain.Job, error) {
	job, err := s.Store.Jobs().GetJobByID(ctx, id)
	if err != nil {
		return domain.Job{}, mapStoreErr(err)
	}
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return s.Store.Jobs().ListJobs(ctx)
}

func (s *JobService) ListJobsByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	return s.Store.Jobs().ListJobsByEmployer(ctx, employerID)
}
