// Package maintenance runs periodic housekeeping jobs.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"shortener-analytics/pkg/logger"
)

// Reconciler heals cached click counters from the click log
type Reconciler interface {
	ReconcileAll(ctx context.Context) (int64, error)
}

const reconcileTimeout = 5 * time.Minute

// Scheduler runs counter reconciliation on a cron schedule and once at start
type Scheduler struct {
	c          *cron.Cron
	schedule   string
	reconciler Reconciler
	logger     *logger.Logger
}

// NewScheduler creates a scheduler for a standard five-field cron expression
func NewScheduler(schedule string, reconciler Reconciler, log *logger.Logger) *Scheduler {
	c := cron.New(
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{
		c:          c,
		schedule:   schedule,
		reconciler: reconciler,
		logger:     log.WithFields(map[string]interface{}{"component": "maintenance"}),
	}
}

// Start registers the job, triggers an initial run and stops the cron when
// ctx ends
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.c.AddFunc(s.schedule, func() { s.reconcile(ctx) }); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", s.schedule, err)
	}

	s.c.Start()
	s.logger.Infow("Maintenance scheduler started", "schedule", s.schedule)

	go s.reconcile(ctx)

	go func() {
		<-ctx.Done()
		<-s.Stop().Done()
	}()

	return nil
}

// Stop halts the cron and returns a context done when running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.c.Stop()
}

func (s *Scheduler) reconcile(parent context.Context) {
	if parent.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(parent, reconcileTimeout)
	defer cancel()

	start := time.Now()
	changed, err := s.reconciler.ReconcileAll(ctx)
	if err != nil {
		s.logger.Errorw("Click count reconciliation failed", "error", err)
		return
	}

	s.logger.Infow("Click count reconciliation finished",
		"links_changed", changed,
		"duration", time.Since(start),
	)
}
