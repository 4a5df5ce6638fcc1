package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"sarb.backend/pkg/logger"
)

type contactPurger interface {
	PurgeRead(ctx context.Context, retention time.Duration) (int64, error)
}

// ContactRetentionJob deletes read contact messages once they are older
// than the retention window.
type ContactRetentionJob struct {
	purger    contactPurger
	retention time.Duration
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
}

func NewContactRetentionJob(purger contactPurger, retention time.Duration, schedule string) *ContactRetentionJob {
	return &ContactRetentionJob{
		purger:    purger,
		retention: retention,
		schedule:  schedule,
		timeout:   5 * time.Minute,
		cron:      cron.New(),
	}
}

// Start registers the purge on its cron schedule. A zero retention disables
// the job.
func (j *ContactRetentionJob) Start(ctx context.Context) error {
	if j.retention <= 0 {
		logger.Info(ctx, "Contact retention disabled")
		return nil
	}
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(ctx) }); err != nil {
		return fmt.Errorf("schedule contact retention %q: %w", j.schedule, err)
	}
	j.cron.Start()
	logger.Info(ctx, "Contact retention job started",
		zap.String("schedule", j.schedule),
		zap.Duration("retention", j.retention),
	)
	return nil
}

// Stop halts scheduling and waits for a running purge to finish.
func (j *ContactRetentionJob) Stop() {
	<-j.cron.Stop().Done()
}

func (j *ContactRetentionJob) run(parent context.Context) {
	if parent.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parent, j.timeout)
	defer cancel()

	deleted, err := j.purger.PurgeRead(ctx, j.retention)
	if err != nil {
		logger.Error(ctx, "Contact retention purge failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		logger.Info(ctx, "Purged read contact messages", zap.Int64("deleted", deleted))
	}
}
