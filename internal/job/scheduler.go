// FILE: internal/job/scheduler.go
package job

import (
	"context"
	"time"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/internal/service"

	"github.com/robfig/cron/v3"
)

const (
	// A datasource stuck in "pending" or "running" longer than this lost
	// its message or its worker, typically to a crash between UpdateStatus
	// and the final commit.
	staleIngestAge = 2 * time.Hour

	// Read notifications older than this are swept nightly.
	notificationRetentionDays = 30
)

// Scheduler runs the periodic maintenance jobs: reaping ingestions that
// died mid-flight and pruning old notifications.
type Scheduler struct {
	cron          *cron.Cron
	uowFactory    unitofwork.RepositoryFactory
	notifications *service.NotificationService
	logger        logger.ILogger
}

func NewScheduler(uowFactory unitofwork.RepositoryFactory, notifications *service.NotificationService, log logger.ILogger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		uowFactory:    uowFactory,
		notifications: notifications,
		logger:        log,
	}
}

// Start registers the jobs and launches the cron loop. Registration uses
// fixed expressions; an invalid one is a programming error, so it panics.
func (s *Scheduler) Start() {
	mustAdd(s.cron, "*/10 * * * *", s.reapStaleIngests)
	mustAdd(s.cron, "0 3 * * *", s.sweepNotifications)
	s.cron.Start()
	s.logger.Info("Scheduler", "Maintenance jobs scheduled", nil)
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func mustAdd(c *cron.Cron, spec string, fn func()) {
	if _, err := c.AddFunc(spec, fn); err != nil {
		panic(err)
	}
}

// reapStaleIngests flips datasources that have sat in "pending" or
// "running" past the stale cutoff to "failed" so the admin can re-trigger
// them. The consumer bumps updated_at while it works, so an old timestamp
// means the worker is gone.
func (s *Scheduler) reapStaleIngests() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.DatasourceRepository()

	cutoff := time.Now().Add(-staleIngestAge)
	stale, err := repo.FindAll(ctx,
		specification.FilterIn{
			Field:  "status",
			Values: []interface{}{entity.IngestStatusPending, entity.IngestStatusRunning},
		},
		specification.UpdatedBefore{Time: cutoff},
	)
	if err != nil {
		s.logger.Error("Scheduler", "Failed to list stale ingestions", map[string]interface{}{"error": err.Error()})
		return
	}

	reason := "ingestion timed out"
	for _, ds := range stale {
		if err := repo.UpdateStatus(ctx, ds.Id, entity.IngestStatusFailed, &reason); err != nil {
			s.logger.Error("Scheduler", "Failed to reap stale ingestion", map[string]interface{}{
				"datasource_id": ds.Id,
				"error":         err.Error(),
			})
			continue
		}
		s.logger.Warn("Scheduler", "Reaped stale ingestion", map[string]interface{}{
			"datasource_id": ds.Id,
			"name":          ds.Name,
		})
	}
}

func (s *Scheduler) sweepNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := s.notifications.SweepOlderThan(ctx, notificationRetentionDays)
	if err != nil {
		s.logger.Error("Scheduler", "Notification sweep failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if removed > 0 {
		s.logger.Info("Scheduler", "Swept old notifications", map[string]interface{}{"removed": removed})
	}
}
