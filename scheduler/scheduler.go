package scheduler

import (
	"context"
	"fmt"
	"time"

	"shuttle-tracker/logger"
	backupService "shuttle-tracker/services/backup"
	resetService "shuttle-tracker/services/reset"
	"shuttle-tracker/utils"
)

// Job cadence on the fixed-offset wall clock.
const (
	resetHour  = 4 // auto-reset: daily at 04:00
	backupHour = 2 // auto-backup: Sunday at 02:00
)

// Scheduler runs the auto-reset and auto-backup jobs at their cadence.
// Failures are logged and the loop keeps going; the manual trigger
// endpoints share the same services and may run concurrently with a
// scheduled run (no mutual exclusion is enforced).
type Scheduler struct {
	Clock  utils.Clock
	Reset  *resetService.Service
	Backup *backupService.Service
}

func New(clock utils.Clock, reset *resetService.Service, backup *backupService.Service) *Scheduler {
	return &Scheduler{Clock: clock, Reset: reset, Backup: backup}
}

// Start launches the job loops. They stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx, "auto-reset", s.nextDaily, s.runReset)
	go s.loop(ctx, "auto-backup", s.nextWeekly, s.runBackup)
}

func (s *Scheduler) loop(ctx context.Context, name string, next func(time.Time) time.Time, run func(context.Context) error) {
	for {
		nowTime := s.Clock.Now()
		fireAt := next(nowTime)
		timer := time.NewTimer(fireAt.Sub(nowTime))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		logger.Info(name + " started")
		if err := run(ctx); err != nil {
			logger.Error(name+" failed", err)
		}
	}
}

// nextDaily returns the next daily fire time strictly after from.
func (s *Scheduler) nextDaily(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), resetHour, 0, 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// nextWeekly returns the next Sunday fire time strictly after from.
func (s *Scheduler) nextWeekly(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), backupHour, 0, 0, 0, from.Location())
	for next.Weekday() != time.Sunday || !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Scheduler) runReset(ctx context.Context) error {
	result, err := s.Reset.AutoReset()
	if err != nil {
		return err
	}
	logger.Success(fmt.Sprintf("Auto-reset completed: %d employees and %d vehicles reverted",
		result.EmployeesReset, result.VehiclesReset))
	return nil
}

func (s *Scheduler) runBackup(ctx context.Context) error {
	result, err := s.Backup.Run(ctx)
	if err != nil {
		return err
	}
	logger.Success(fmt.Sprintf("Auto-backup completed: %d employees, %d vehicles, %d records exported",
		result.Employees, result.Vehicles, result.Records))
	return nil
}
