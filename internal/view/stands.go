package view

import (
	"context"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/logger"
	"market-stand-admin/internal/metrics"
)

const standsView = "stands"

// DeletePrompt is the question a user must confirm before a stand is deleted.
const DeletePrompt = "Are you sure you want to delete this market stand?"

// StandGateway reads and mutates market stands.
type StandGateway interface {
	ListStands(ctx context.Context) ([]domain.MarketStand, error)
	UpdateStandStatus(ctx context.Context, id domain.StandID, status domain.StandStatus) error
	DeleteStand(ctx context.Context, id domain.StandID) error
}

// ConfirmFunc is a synchronous yes/no gate shown the given prompt.
type ConfirmFunc func(prompt string) bool

// Stands is the management view: the full stand list with status editing and deletion.
type Stands struct {
	*mount
	state   *State[[]domain.MarketStand]
	gateway StandGateway
	metrics *metrics.Metrics
}

// MountStands activates a management view. It returns immediately with an
// empty, loading list while the first fetch runs in the background.
func MountStands(ctx context.Context, gw StandGateway, m *metrics.Metrics) *Stands {
	v := &Stands{
		state:   NewState([]domain.MarketStand{}),
		gateway: gw,
		metrics: m,
	}
	v.mount = startMount(ctx, func(ctx context.Context) { v.Refetch(ctx) })
	return v
}

// Refetch reloads the full stand list and replaces the held snapshot on success.
func (v *Stands) Refetch(ctx context.Context) {
	fetch(ctx, standsView, v.state, v.metrics, v.gateway.ListStands)
}

// UpdateStatus asks the gateway to change a stand's status. Only after the
// write succeeds is the list refetched; a failed write is logged and the
// current list stays as it is.
func (v *Stands) UpdateStatus(ctx context.Context, id domain.StandID, status domain.StandStatus) {
	if err := v.gateway.UpdateStandStatus(ctx, id, status); err != nil {
		logger.WithView(standsView).Error("Error updating stand status", "stand_id", id, "status", status, "error", err)
		return
	}
	v.Refetch(ctx)
}

// Delete removes a stand once confirm accepts DeletePrompt. A declined
// confirmation sends nothing.
func (v *Stands) Delete(ctx context.Context, id domain.StandID, confirm ConfirmFunc) {
	if confirm == nil || !confirm(DeletePrompt) {
		return
	}
	if err := v.gateway.DeleteStand(ctx, id); err != nil {
		logger.WithView(standsView).Error("Error deleting stand", "stand_id", id, "error", err)
		return
	}
	v.Refetch(ctx)
}

// Snapshot returns the stands to render and whether the first load is still pending.
func (v *Stands) Snapshot() ([]domain.MarketStand, bool) {
	return v.state.Snapshot()
}

// State exposes the underlying container.
func (v *Stands) State() *State[[]domain.MarketStand] {
	return v.state
}
