package view

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"market-stand-admin/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockStatsSource
type MockStatsSource struct {
	mock.Mock
}

func (m *MockStatsSource) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}

// MockStandGateway
type MockStandGateway struct {
	mock.Mock
}

func (m *MockStandGateway) ListStands(ctx context.Context) ([]domain.MarketStand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketStand), args.Error(1)
}

func (m *MockStandGateway) UpdateStandStatus(ctx context.Context, id domain.StandID, status domain.StandStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStandGateway) DeleteStand(ctx context.Context, id domain.StandID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memoryGateway is a strongly consistent in-memory gateway that logs every operation in order.
type memoryGateway struct {
	mu     sync.Mutex
	stands []domain.MarketStand
	ops    []string
	failOn map[string]error
}

func newMemoryGateway(stands ...domain.MarketStand) *memoryGateway {
	return &memoryGateway{stands: stands, failOn: map[string]error{}}
}

func (g *memoryGateway) ListStands(ctx context.Context) ([]domain.MarketStand, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ops = append(g.ops, "GET /market-stands")
	if err := g.failOn["list"]; err != nil {
		return nil, err
	}
	return append([]domain.MarketStand{}, g.stands...), nil
}

func (g *memoryGateway) UpdateStandStatus(ctx context.Context, id domain.StandID, status domain.StandStatus) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ops = append(g.ops, fmt.Sprintf("PUT /market-stands/%s/status?status=%s", id, status))
	if err := g.failOn["update"]; err != nil {
		return err
	}
	for i := range g.stands {
		if g.stands[i].ID == id {
			g.stands[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("stand %s not found", id)
}

func (g *memoryGateway) DeleteStand(ctx context.Context, id domain.StandID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ops = append(g.ops, fmt.Sprintf("DELETE /market-stands/%s", id))
	if err := g.failOn["delete"]; err != nil {
		return err
	}
	for i := range g.stands {
		if g.stands[i].ID == id {
			g.stands = append(g.stands[:i], g.stands[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("stand %s not found", id)
}

func (g *memoryGateway) Ops() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.ops...)
}

func (g *memoryGateway) Fail(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failOn[op] = err
}
