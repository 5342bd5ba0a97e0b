package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crucial707/blog-api/internal/metrics"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/robfig/cron/v3"
)

// StatsSource reports current table sizes.
type StatsSource interface {
	Counts(ctx context.Context) (repo.Counts, error)
}

// refreshTimeout bounds one stats query.
const refreshTimeout = 10 * time.Second

// Refresh queries src once and publishes the counts as gauges.
func Refresh(ctx context.Context, src StatsSource) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	c, err := src.Counts(ctx)
	if err != nil {
		return err
	}
	metrics.SetContentRows(c.Users, c.Posts, c.Comments)
	return nil
}

// Run refreshes the content gauges immediately and then on every tick of
// the cron schedule, until ctx is cancelled. It returns an error only for an
// invalid schedule.
func Run(ctx context.Context, src StatsSource, schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	job := func() {
		if err := Refresh(ctx, src); err != nil {
			slog.Warn("scheduler: stats refresh failed", "error", err)
		}
	}
	if _, err := c.AddFunc(schedule, job); err != nil {
		return fmt.Errorf("scheduler: invalid cron schedule %q: %w", schedule, err)
	}

	// Initial load
	job()
	c.Start()
	slog.Info("scheduler: stats refresher started", "schedule", schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
