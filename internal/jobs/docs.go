// Package jobs provides scheduled background tasks for the repair shop.
//
// Jobs are cron based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and are managed through JobManager:
//
//	reminders := jobs.NewReminderJob(handler, metrics, "0 */5 * * * *", 24*time.Hour, logger)
//	jobManager := jobs.NewJobManager(reminders)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// ReminderJob flags appointments that start within the configured lead time
// and have not been reminded yet. Each flagged appointment produces one
// appointment_reminder event. A failed sweep is logged and retried on the
// next tick.
package jobs
