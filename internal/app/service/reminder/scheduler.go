package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/letterpay/pkg/config"
)

// Scheduler runs ticks on a fixed interval inside the API process.
type Scheduler struct {
	ticker   Ticker
	interval time.Duration
	log      *zap.SugaredLogger
}

func NewScheduler(ticker Ticker, interval time.Duration, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{ticker: ticker, interval: interval, log: log}
}

// Run ticks until ctx is done. Tick errors are logged and never stop the loop.
func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.ticker.RunTick(ctx); err != nil {
				if errors.Is(err, ErrTickInProgress) {
					s.log.Debugw("scheduled reminder tick skipped, another tick is running")
					continue
				}
				if ctx.Err() != nil {
					return
				}
				s.log.Errorw("scheduled reminder tick failed", "err", err)
			}
		}
	}
}

func registerScheduler(lc fx.Lifecycle, cfg *config.Config, svc *Service, log *zap.SugaredLogger) {
	if cfg.Reminders.Interval <= 0 {
		return
	}
	s := NewScheduler(svc, cfg.Reminders.Interval, log)
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Infow("reminder scheduler started", "interval", cfg.Reminders.Interval)
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Run(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}

// SchedulerModule starts the in-process loop when reminders.interval > 0.
var SchedulerModule = fx.Options(
	fx.Invoke(registerScheduler),
)
