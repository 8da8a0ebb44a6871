package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-stand-admin/internal/config"
	"market-stand-admin/internal/jobs"
)

func validConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("gateway:\n  base_url: http://gateway.test\n"))
	require.NoError(t, err)
	return cfg
}

func TestNewScheduler_RegistersAllJobs(t *testing.T) {
	s, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, validConfig(t)))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Entries())

	s.Start()
	s.Stop()
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	cfg := validConfig(t)
	cfg.Scheduler.RecordHeartbeat = "every now and then"

	_, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, cfg))
	assert.ErrorContains(t, err, "RecordHeartbeat")
}
