package scheduler

import (
	"fmt"
	"time"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/repository"
	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// SweepScheduler runs the overdue sweep on a cron schedule
type SweepScheduler struct {
	paymentService service.PaymentService
	sweepLogRepo   repository.SweepLogRepository
	logger         *logger.Logger
	cron           *cron.Cron
	cronExpression string
}

// NewSweepScheduler creates a new sweep scheduler
func NewSweepScheduler(paymentService service.PaymentService, sweepLogRepo repository.SweepLogRepository, logger *logger.Logger, cronExpression string) *SweepScheduler {
	// Cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &SweepScheduler{
		paymentService: paymentService,
		sweepLogRepo:   sweepLogRepo,
		logger:         logger,
		cron:           c,
		cronExpression: cronExpression,
	}
}

// Start schedules the sweep job and starts the cron runner
func (s *SweepScheduler) Start() error {
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling overdue sweep job")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	_, err := s.cron.AddFunc(s.cronExpression, s.runSweep)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue sweep job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Overdue sweep scheduler started")

	return nil
}

// Stop gracefully stops the scheduler
func (s *SweepScheduler) Stop() {
	s.logger.Info("Stopping overdue sweep scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Overdue sweep scheduler stopped")
}

// runSweep is the scheduled job that reclassifies overdue payments
func (s *SweepScheduler) runSweep() {
	runID := uuid.New().String()

	s.writeLog(runID, "Starting scheduled overdue sweep", models.SweepStatusStart)
	s.logger.WithField("run_id", runID).Info("Starting scheduled overdue sweep")

	count, err := s.paymentService.UpdateOverduePayments(time.Now())
	if err != nil {
		s.writeLog(runID, fmt.Sprintf("Overdue sweep failed after %d transitions: %v", count, err), models.SweepStatusFailed)
		s.logger.WithError(err).WithField("run_id", runID).Error("Scheduled overdue sweep failed")
		return
	}

	s.writeLog(runID, fmt.Sprintf("Overdue sweep completed: %d payments transitioned", count), models.SweepStatusSuccess)
	s.logger.WithFields(map[string]interface{}{
		"run_id": runID,
		"count":  count,
	}).Info("Scheduled overdue sweep completed")
}

// writeLog records a sweep run entry in the database
func (s *SweepScheduler) writeLog(runID, message, status string) {
	entry := &models.SweepLog{
		RunID:   runID,
		Message: message,
		Status:  status,
	}
	if err := s.sweepLogRepo.Create(entry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create sweep log entry")
	}
}
