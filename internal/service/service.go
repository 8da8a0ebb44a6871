package service

import (
	"context"
	"errors"
	"time"

	"market-stand-admin/internal/domain"
)

// ErrInvalidInput marks a request the caller can fix.
var ErrInvalidInput = errors.New("invalid input")

// StatusCheckLimit caps how many status checks List returns.
const StatusCheckLimit = 1000

type StatusCheckService interface {
	Create(ctx context.Context, in domain.StatusCheckCreate) (*domain.StatusCheck, error)
	List(ctx context.Context) ([]domain.StatusCheck, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}
