package http

import (
	"log/slog"
	"time"

	"factcheck-web/pkg/config"

	"github.com/robfig/cron/v3"
)

// DefaultCleanupInterval is the default cleanup interval if not specified.
const DefaultCleanupInterval = 5 * time.Minute

// ScheduleRateLimitCleanup registers a job on scheduler that periodically
// removes idle client buckets from limiter.
//
// The job runs for as long as the scheduler does; stopping the scheduler
// during shutdown stops the cleanup. Intervals under one second are rounded
// up by cron.Every.
func ScheduleRateLimitCleanup(
	scheduler *cron.Cron,
	limiter *RateLimiter,
	interval time.Duration,
	limiterType string,
) cron.EntryID {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	id := scheduler.Schedule(cron.Every(interval), cron.FuncJob(func() {
		removed := limiter.CleanupExpired()
		slog.Debug("rate limit cleanup completed",
			slog.String("limiter_type", limiterType),
			slog.Int("keys_removed", removed),
			slog.Int("active_keys", limiter.ActiveClients()))
	}))

	slog.Info("rate limit cleanup scheduled",
		slog.String("limiter_type", limiterType),
		slog.Duration("interval", interval))

	return id
}

// LoadCleanupIntervalFromEnv reads RATELIMIT_CLEANUP_INTERVAL (e.g. "5m").
// Invalid values fall back to DefaultCleanupInterval.
func LoadCleanupIntervalFromEnv() time.Duration {
	return config.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", DefaultCleanupInterval)
}
