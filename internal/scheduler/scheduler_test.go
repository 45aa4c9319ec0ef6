package scheduler

import (
	"testing"

	"rentalmotor-backend/internal/config"
	"rentalmotor-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Billing.Timezone = "Asia/Jakarta"
	cfg.Scheduler.MarkOverdueTransactions = "0 */15 * * * *"
	cfg.Scheduler.SendOverdueReminders = "0 0 9 * * *"
	return cfg
}

func TestNewScheduler(t *testing.T) {
	s, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, testConfig()))
	require.NoError(t, err)
	assert.True(t, s.IsRunning())
	assert.Len(t, s.cron.Entries(), 2)
	assert.Equal(t, "Asia/Jakarta", s.cron.Location().String())
}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Scheduler.SendOverdueReminders = "every morning"

	_, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg))
	assert.ErrorContains(t, err, "SendOverdueReminders")
}
