package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/repository"
)

type statusCheckService struct {
	repo     repository.StatusCheckRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewStatusCheckService(repo repository.StatusCheckRepository) StatusCheckService {
	return &statusCheckService{
		repo:     repo,
		validate: domain.NewValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create records a check-in. A storage failure is logged and the record is
// still returned to the caller.
func (s *statusCheckService) Create(ctx context.Context, in domain.StatusCheckCreate) (*domain.StatusCheck, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	check := &domain.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: in.ClientName,
		Timestamp:  s.now(),
	}
	if err := s.repo.Create(ctx, check); err != nil {
		logger.Error("Error storing status check", "id", check.ID, "clientName", check.ClientName, "error", err)
	}
	return check, nil
}

// List returns the newest status checks. A storage failure yields an empty list.
func (s *statusCheckService) List(ctx context.Context) ([]domain.StatusCheck, error) {
	checks, err := s.repo.List(ctx, StatusCheckLimit)
	if err != nil {
		logger.Error("Error listing status checks", "error", err)
		return []domain.StatusCheck{}, nil
	}
	if checks == nil {
		checks = []domain.StatusCheck{}
	}
	return checks, nil
}

func (s *statusCheckService) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("%w: retention must be positive, got %s", ErrInvalidInput, olderThan)
	}
	cutoff := s.now().Add(-olderThan)
	n, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune status checks before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}
