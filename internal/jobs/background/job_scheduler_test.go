package background

import (
	"testing"

	"resellerdesk/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestJobSchedulerRegistersSyncJobs(t *testing.T) {
	js := NewJobScheduler(nil, config.SyncSettings{IntervalHours: 6})
	defer js.Stop()

	status := js.GetJobStatus()
	assert.Equal(t, 2, status["total_jobs"])

	entries, ok := status["jobs"].([]map[string]interface{})
	assert.True(t, ok)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry["name"].(string))
	}
	assert.ElementsMatch(t, []string{"contact-sync", "subscription-sync"}, names)
}
