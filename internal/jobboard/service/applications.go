package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hirewire/jobboard/internal/jobboard/domain"
	"github.com/hirewire/jobboard/internal/jobboard/store"
	"github.com/hirewire/jobboard/pkg/idx"
	"github.com/hirewire/jobboard/pkg/slogx"
)

type ApplicationService struct {
	Store store.Store
}

// Apply records a user's application to a job. The existence checks and the
// insert run in one transaction so a concurrently deleted job cannot leave a
// dangling application.
func (s *ApplicationService) Apply(ctx context.Context, userID, jobID string) (domain.Application, error) {
	var app domain.Application

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			return mapStoreErr(err)
		}
		if _, err := tx.Jobs().GetJobByID(ctx, jobID); err != nil {
			return mapStoreErr(err)
		}

		app = domain.Application{
			ID:        idx.New().String(),
			UserID:    userID,
			JobID:     jobID,
			AppliedAt: time.Now().UTC(),
		}
		if err := tx.Applications().CreateApplication(ctx, app); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: already applied to this job", ErrBadRequest)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}

	slogx.FromContext(ctx).Info("application submitted", "user_id", userID, "job_id", jobID)
	return app, nil
}

func (s *ApplicationService) ListApplicationsByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	return s.Store.Applications().ListApplicationsByUser(ctx, userID)
}

func (s *ApplicationService) ListApplicationsByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	return s.Store.Applications().ListApplicationsByJob(ctx, jobID)
}
