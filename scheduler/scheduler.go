package scheduler

import (
	"time"

	"rentbot-backend/config"
	"rentbot-backend/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives the recurring work: the two daily notification scans
// and the month-start billing reset. It runs alongside request traffic;
// the database is the only shared state.
type Scheduler struct {
	cron          *cron.Cron
	notifications *services.NotificationService
	payments      *services.PaymentService
	log           *zap.Logger
}

func New(notifications *services.NotificationService, payments *services.PaymentService, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		notifications: notifications,
		payments:      payments,
		log:           log,
	}
}

// Start registers the cron entries and launches the scheduler goroutine.
func (s *Scheduler) Start(cfg config.SchedulerConfig) error {
	if _, err := s.cron.AddFunc(cfg.ReminderCron, s.runReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(cfg.OverdueCron, s.runOverdue); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(cfg.BillingResetCron, s.runBillingReset); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("scheduler started",
		zap.String("reminder_cron", cfg.ReminderCron),
		zap.String("overdue_cron", cfg.OverdueCron),
		zap.String("billing_reset_cron", cfg.BillingResetCron))
	return nil
}

// Stop halts the scheduler. An in-flight pass runs to completion; a pass
// lost to a crash is simply redone by the next trigger.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runReminders() {
	events, err := s.notifications.RunReminderScan(time.Now())
	if err != nil {
		s.log.Error("reminder scan failed", zap.Error(err))
		return
	}
	s.log.Info("reminder scan finished", zap.Int("events", len(events)))
}

func (s *Scheduler) runOverdue() {
	events, err := s.notifications.RunOverdueScan(time.Now())
	if err != nil {
		s.log.Error("overdue scan failed", zap.Error(err))
		return
	}
	s.log.Info("overdue scan finished", zap.Int("events", len(events)))
}

func (s *Scheduler) runBillingReset() {
	reset, err := s.payments.StartNewBillingPeriod()
	if err != nil {
		s.log.Error("billing period reset failed", zap.Error(err))
		return
	}
	s.log.Info("new billing period started", zap.Int64("tenants_reset", reset))
}
