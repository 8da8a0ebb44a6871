package repository

import (
	"context"
	"time"

	"market-stand-admin/internal/domain"
)

type StatusCheckRepository interface {
	// EnsureSchema creates the status_checks table if it does not exist.
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, check *domain.StatusCheck) error
	// List returns status checks newest first, at most limit of them.
	List(ctx context.Context, limit int) ([]domain.StatusCheck, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
