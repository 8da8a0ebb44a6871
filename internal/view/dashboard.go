package view

import (
	"context"

	"market-stand-admin/internal/domain"
	"market-stand-admin/internal/metrics"
)

const dashboardView = "dashboard"

// StatsSource provides dashboard statistics.
type StatsSource interface {
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

// Dashboard is the operator overview: aggregate stand statistics and recent transactions.
type Dashboard struct {
	*mount
	state   *State[domain.DashboardStats]
	source  StatsSource
	metrics *metrics.Metrics
}

// MountDashboard activates a dashboard view. It returns immediately with a
// zero-valued, loading state while the stats fetch runs in the background.
func MountDashboard(ctx context.Context, source StatsSource, m *metrics.Metrics) *Dashboard {
	d := &Dashboard{
		state:   NewState(domain.EmptyDashboardStats()),
		source:  source,
		metrics: m,
	}
	d.mount = startMount(ctx, d.load)
	return d
}

func (d *Dashboard) load(ctx context.Context) {
	fetch(ctx, dashboardView, d.state, d.metrics, d.source.DashboardStats)
}

// Snapshot returns the stats to render and whether the first load is still pending.
func (d *Dashboard) Snapshot() (domain.DashboardStats, bool) {
	return d.state.Snapshot()
}

// State exposes the underlying container.
func (d *Dashboard) State() *State[domain.DashboardStats] {
	return d.state
}
