package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/pkg/idx"
)

type EmployerService struct {
	Store store.Store
}

func (s *EmployerService) AddEmployer(ctx context.Context, name, contactEmail, industry string) (domain.Employer, error) {
	if name == "" || contactEmail == "" || industry == "" {
		return domain.Employer{}, fmt.Errorf("%w: name, contact email and industry are required", ErrBadRequest)
	}

	employer := domain.Employer{
		ID:           idx.New().String(),
		Name:         name,
		ContactEmail: contactEmail,
		Industry:     industry,
	}
	if err := s.Store.Employers().CreateEmployer(ctx, employer); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Employer{}, fmt.Errorf("%w: contact email already registered", ErrBadRequest)
		}
		return domain.Employer{}, err
	}
	return employer, nil
}

// UpdateEmployer applies the non-empty fields onto the stored record.
func (s *EmployerService) UpdateEmployer(ctx context.Context, id string, name, contactEmail, industry *string) (domain.Employer, error) {
	employer, err := s.Store.Employers().GetEmployerByID(ctx, id)
	if err != nil {
		return domain.Employer{}, mapStoreErr(err)
	}

	if name != nil {
		employer.Name = *name
	}
	if contactEmail != nil {
		employer.ContactEmail = *contactEmail
	}
	if industry != nil {
		employer.Industry = *industry
	}

	if err := s.Store.Employers().UpdateEmployer(ctx, employer); err != nil {
		return domain.Employer{}, mapStoreErr(err)
	}
	return employer, nil
}

func (s *EmployerService) DeleteEmployer(ctx context.Context, id string) error {
	return mapStoreErr(s.Store.Employers().DeleteEmployer(ctx, id))
}

func (s *EmployerService) GetEmployerByID(ctx context.Context, id string) (domain.Employer, error) {
	employer, err := s.Store.Employers().GetEmployerByID(ctx, id)
	if err != nil {
		return domain.Employer{}, mapStoreErr(err)
	}
	return employer, nil
}

func (s *EmployerService) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	return s.Store.Employers().ListEmployers(ctx)
}
