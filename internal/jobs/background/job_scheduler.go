package background

import (
	"context"
	"log"
	"time"

	"resellerdesk/internal/config"
	"resellerdesk/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs the periodic reseller synchronization jobs. The job set is
// fixed at construction, so status reads need no locking.
type JobScheduler struct {
	scheduler gocron.Scheduler
	sync      *jobs.ResellerSync
	settings  config.SyncSettings
	jobJobs   map[string]gocron.Job
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(syncJob *jobs.ResellerSync, settings config.SyncSettings) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		sync:      syncJob,
		settings:  settings,
		jobJobs:   make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	interval := time.Duration(js.settings.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	contactsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.runContactSync, context.Background()),
		gocron.WithName("reseller-contact-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create contact sync job: %v", err)
	} else {
		js.jobJobs["contact-sync"] = contactsJob
	}

	// Subscriptions depend on the synced contacts, so the job trails the
	// contact sync by an hour.
	subscriptionsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.runSubscriptionSync, context.Background()),
		gocron.WithName("reseller-subscription-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartDateTime(time.Now().Add(1*time.Hour))),
	)
	if err != nil {
		log.Printf("Failed to create subscription sync job: %v", err)
	} else {
		js.jobJobs["subscription-sync"] = subscriptionsJob
	}

	log.Printf("Registered %d background jobs", len(js.jobJobs))
}

// runContactSync pulls the customer list and reconciles local contacts
func (js *JobScheduler) runContactSync(ctx context.Context) error {
	log.Printf("Starting scheduled contact sync")

	result := js.sync.SyncContacts(ctx)
	log.Printf("Completed scheduled contact sync: %d processed, %d errors", result.Processed, len(result.Errors))
	return nil
}

// runSubscriptionSync pulls subscriptions for all synced customers
func (js *JobScheduler) runSubscriptionSync(ctx context.Context) error {
	log.Printf("Starting scheduled subscription sync")

	result := js.sync.SyncSubscriptions(ctx)
	log.Printf("Completed scheduled subscription sync: %d processed, %d errors", result.Processed, len(result.Errors))
	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	jobs := make([]map[string]interface{}, 0, len(js.jobJobs))
	for name, job := range js.jobJobs {
		entry := map[string]interface{}{"name": name}
		if next, err := job.NextRun(); err == nil && !next.IsZero() {
			entry["next_run"] = next
		}
		jobs = append(jobs, entry)
	}

	return map[string]interface{}{
		"total_jobs": len(js.jobJobs),
		"jobs":       jobs,
	}
}
