package jobs

import (
	"context"
	"time"

	"renhold/internal/logger"
	"renhold/internal/repositories"
	"renhold/internal/services"
)

// ReminderJob delivers scheduled reminder notifications once they come due.
// It runs frequently and cheaply; the due query is covered by a partial
// index on unsent rows.
type ReminderJob struct {
	notificationRepo    repositories.NotificationRepository
	notificationService *services.NotificationService
	log                 logger.Logger
	schedule            services.Schedule
}

func NewReminderJob(
	notificationRepo repositories.NotificationRepository,
	notificationService *services.NotificationService,
	schedule services.Schedule,
) *ReminderJob {
	log := logger.New("reminderJob")
	log.Info("Creating new reminder job", "schedule", schedule)

	return &ReminderJob{
		notificationRepo:    notificationRepo,
		notificationService: notificationService,
		log:                 log,
		schedule:            schedule,
	}
}

func (j *ReminderJob) Name() string {
	return "ReminderDelivery"
}

func (j *ReminderJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	due, err := j.notificationRepo.GetDueUnsent(ctx, time.Now())
	if err != nil {
		return log.Err("failed to load due reminders", err)
	}

	if len(due) == 0 {
		return nil
	}

	log.Info("Delivering due reminders", "count", len(due))

	var failed int
	for i := range due {
		if err := j.notificationService.Deliver(ctx, &due[i]); err != nil {
			// Keep going; an undelivered reminder stays unsent and is
			// retried on the next run.
			log.Er("failed to deliver reminder", err, "notificationID", due[i].ID)
			failed++
		}
	}

	if failed > 0 {
		return log.ErrMsg("some reminders failed to deliver")
	}

	return nil
}

func (j *ReminderJob) Schedule() services.Schedule {
	return j.schedule
}
