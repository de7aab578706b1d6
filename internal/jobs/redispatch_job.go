package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/pipeline"

	"github.com/robfig/cron/v3"
)

// RedispatchJob periodically sweeps orders stuck waiting for a rider.
// Runs every second so a freed-up or newly added rider is picked up quickly.
type RedispatchJob struct {
	orchestrator *pipeline.Orchestrator
	maxAge       time.Duration
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewRedispatchJob creates the sweep job. Orders stuck longer than maxAge
// are abandoned instead of retried.
func NewRedispatchJob(orchestrator *pipeline.Orchestrator, maxAge time.Duration, logger *slog.Logger) *RedispatchJob {
	return &RedispatchJob{
		orchestrator: orchestrator,
		maxAge:       maxAge,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "redispatch_job"),
	}
}

// Start begins the redispatch job to run every second.
func (j *RedispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		redispatched, err := j.orchestrator.RedispatchStuck(ctx, j.maxAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Redispatch job failed", "error", err)
			return
		}
		if redispatched > 0 {
			j.logger.InfoContext(ctx, "Stuck orders redispatched", "count", redispatched)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Redispatch job started (running every second)")
	return nil
}

// Stop stops the redispatch job.
func (j *RedispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Redispatch job stopped")
}
