package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/reminders"
)

// DigestSender delivers the due-reminder digest mail.
type DigestSender interface {
	SendReminderDigest(reminders []models.Reminder) error
}

// Scheduler runs the daily reminder digest job.
type Scheduler struct {
	cron        *cron.Cron
	reminderSvc *reminders.Service
	sender      DigestSender
	schedule    string
	logger      *zap.Logger
}

// NewScheduler creates a scheduler. schedule is a standard five-field cron
// expression; empty means daily at 07:00.
func NewScheduler(reminderSvc *reminders.Service, sender DigestSender, schedule string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == "" {
		schedule = "0 7 * * *"
	}

	return &Scheduler{
		cron:        cron.New(),
		reminderSvc: reminderSvc,
		sender:      sender,
		schedule:    schedule,
		logger:      logger,
	}
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendReminderDigest); err != nil {
		s.logger.Error("failed to schedule reminder digest", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendReminderDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	due, err := s.reminderSvc.Due(ctx)
	if err != nil {
		s.logger.Error("failed to collect due reminders", zap.Error(err))
		return
	}
	if len(due) == 0 {
		s.logger.Debug("no reminders due, skipping digest")
		return
	}

	if err := s.sender.SendReminderDigest(due); err != nil {
		s.logger.Error("failed to send reminder digest", zap.Error(err))
		return
	}
	s.logger.Info("reminder digest sent", zap.Int("count", len(due)))
}
