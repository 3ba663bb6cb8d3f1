package jobs

import (
	"context"
	"log/slog"
	"time"

	"repairshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReminderSchedule runs the reminder sweep every five minutes.
const DefaultReminderSchedule = "0 */5 * * * *"

type RemindersHandler interface {
	Handle(ctx context.Context, cmd commands.SendAppointmentRemindersCommand) (int, error)
}

// RemindersRecorder receives the number of appointments flagged per run.
type RemindersRecorder interface {
	RemindersSent(n int)
}

// ReminderJob flags appointments starting within the lead time and lets the
// handler publish one reminder event per appointment.
type ReminderJob struct {
	handler  RemindersHandler
	recorder RemindersRecorder
	schedule string
	lead     time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReminderJob creates the job. schedule is a six-field cron expression
// (seconds first); an empty schedule means DefaultReminderSchedule.
func NewReminderJob(
	handler RemindersHandler,
	recorder RemindersRecorder,
	schedule string,
	lead time.Duration,
	logger *slog.Logger,
) *ReminderJob {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	return &ReminderJob{
		handler:  handler,
		recorder: recorder,
		schedule: schedule,
		lead:     lead,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "reminder_job"),
	}
}

func (j *ReminderJob) Name() string {
	return "reminder"
}

// Start registers the sweep on the cron schedule.
func (j *ReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reminder job started",
		"schedule", j.schedule, "lead", j.lead.String())
	return nil
}

// RunOnce performs a single sweep. Failures are logged; the next tick retries.
func (j *ReminderJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewSendAppointmentRemindersCommand(j.now().UTC(), j.lead)
	if err != nil {
		j.logger.ErrorContext(ctx, "Reminder job misconfigured", "error", err)
		return
	}

	sent, err := j.handler.Handle(ctx, cmd)
	if sent > 0 && j.recorder != nil {
		j.recorder.RemindersSent(sent)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Reminder job failed", "sent", sent, "error", err)
		return
	}
	if sent > 0 {
		j.logger.InfoContext(ctx, "Reminders sent", "count", sent)
	}
}

// Stop waits for a running sweep to finish.
func (j *ReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reminder job stopped")
}
