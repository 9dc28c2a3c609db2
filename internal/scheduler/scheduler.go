package scheduler

import (
	"context"
	"time"

	"github.com/phuslu/log"

	"jobview-engine/internal/logging"
)

type Task func(ctx context.Context) error

// Every runs task once immediately and then on every tick until ctx is
// done. Errors are logged and do not stop the loop.
func Every(ctx context.Context, interval time.Duration, name string, task Task, logger *log.Logger) {
	logger = logging.OrNop(logger)

	t := time.NewTicker(interval)
	defer t.Stop()

	run := func() {
		if err := task(ctx); err != nil {
			logger.Warn().Str("task", name).Err(err).Msg("scheduled task failed")
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
