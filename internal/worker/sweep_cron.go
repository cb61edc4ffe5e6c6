package worker

// sweep_cron.go
// Background goroutine driving the daily overdue sweep. A Redis SETNX lock
// keyed by date keeps multiple instances from double-sweeping.

import (
	"context"
	"time"

	"github.com/Aniket-89/recrm/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const sweepLockTTL = 6 * time.Hour

// StartSweepCron launches a goroutine that runs the overdue sweep once per
// day at the configured local hour. It respects the context for graceful
// shutdown.
func StartSweepCron(ctx context.Context, sweeper service.SweepService, rdb *redis.Client, hour int) {
	go func() {
		log.Info().Int("hour", hour).Msg("sweep_cron: started")
		for {
			next := nextRunAt(time.Now(), hour)
			select {
			case <-ctx.Done():
				log.Info().Msg("sweep_cron: shutting down")
				return
			case <-time.After(time.Until(next)):
				runSweep(ctx, sweeper, rdb)
			}
		}
	}()
}

// nextRunAt returns the next occurrence of the given local hour strictly
// after now.
func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func runSweep(ctx context.Context, sweeper service.SweepService, rdb *redis.Client) {
	today := time.Now().Format("2006-01-02")
	lockKey := "lock:sweep:" + today
	ok, err := rdb.SetNX(ctx, lockKey, 1, sweepLockTTL).Result()
	if err != nil {
		log.Error().Err(err).Msg("sweep_cron: lock acquisition failed")
		return
	}
	if !ok {
		log.Debug().Str("date", today).Msg("sweep_cron: another instance holds the lock")
		return
	}

	marked, err := sweeper.SweepOverdue(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("sweep_cron: sweep failed")
		return
	}
	log.Info().Int("rows_marked", marked).Str("date", today).Msg("sweep_cron: sweep completed")
}
