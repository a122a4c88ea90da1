// Package reminder escalates unpaid requests through the FIRST, SECOND and
// FINAL reminder tiers, one tick at a time.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/internal/platform/lock"
	"github.com/fatflowers/letterpay/internal/platform/mailer"
	"github.com/fatflowers/letterpay/pkg/config"
	"github.com/fatflowers/letterpay/pkg/logctx"
	"github.com/fatflowers/letterpay/pkg/metrics"
)

// ErrTickInProgress is returned when another tick holds the run lock.
var ErrTickInProgress = errors.New("reminder tick already in progress")

const (
	defaultLockKey = "letterpay:reminders:tick"
	defaultLockTTL = 10 * time.Minute
)

// Ticker runs one reminder pass.
type Ticker interface {
	RunTick(ctx context.Context) (*Summary, error)
}

type Service struct {
	db         *gorm.DB
	policy     *Policy
	dispatcher *Dispatcher
	locker     lock.Locker
	lockKey    string
	lockTTL    time.Duration
	log        *zap.SugaredLogger
	now        func() time.Time
}

func NewService(db *gorm.DB, cfg *config.Config, sender mailer.Sender, locker lock.Locker, log *zap.SugaredLogger) (*Service, error) {
	loc, err := cfg.Reminders.Location()
	if err != nil {
		return nil, err
	}
	s := &Service{
		db:         db,
		policy:     NewPolicy(db, loc),
		dispatcher: NewDispatcher(db, sender, log, cfg.Reminders.SendTimeout, cfg.Reminders.Workers),
		locker:     locker,
		lockKey:    cfg.Reminders.LockKey,
		lockTTL:    cfg.Reminders.LockTTL,
		log:        log,
	}
	if s.lockKey == "" {
		s.lockKey = defaultLockKey
	}
	if s.lockTTL <= 0 {
		s.lockTTL = defaultLockTTL
	}
	s.setClock(time.Now)
	return s, nil
}

func (s *Service) setClock(now func() time.Time) {
	s.now = now
	s.dispatcher.now = now
}

// RunTick performs one pass: lock, settings, gate, plan, dispatch. Send
// failures are reported in the summary; only storage failures before any
// dispatch and lock contention are returned as errors. When ctx ends during
// dispatch the partial summary is returned together with ctx's error.
func (s *Service) RunTick(ctx context.Context) (summary *Summary, err error) {
	start := time.Now()
	l := logctx.FromCtx(ctx, s.log)
	result := "ok"
	defer func() {
		if err != nil {
			switch {
			case errors.Is(err, ErrTickInProgress):
				result = "busy"
			case ctx.Err() != nil:
				result = "aborted"
			default:
				result = "error"
			}
		}
		metrics.ObserveReminderTick(result, start)
	}()

	token, ok, err := s.locker.TryLock(ctx, s.lockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire reminder lock: %w", err)
	}
	if !ok {
		l.Infow("reminder_tick_busy")
		return nil, ErrTickInProgress
	}
	defer func() {
		if rerr := s.locker.Release(context.WithoutCancel(ctx), s.lockKey, token); rerr != nil {
			l.Warnw("failed to release reminder lock", "err", rerr)
		}
	}()

	now := s.now()
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	gate, err := s.policy.Gate(ctx, settings, now)
	if err != nil {
		return nil, err
	}
	if !gate.Open {
		result = "skipped"
		l.Infow("reminder_tick_skipped", "reason", gate.Reason, "sent_today", gate.SentToday)
		summary = newSummary()
		summary.Skipped = true
		summary.SkipReason = gate.Reason
		return summary, nil
	}

	plan, err := s.policy.Plan(ctx, settings, now, gate.Headroom)
	if err != nil {
		return nil, err
	}
	l.Infow("reminder_tick_planned",
		"first", len(plan.First), "second", len(plan.Second), "final", len(plan.Final),
		"deferred", plan.Deferred, "sent_today", gate.SentToday)

	summary = s.dispatcher.Dispatch(ctx, plan)
	l.Infow("reminder_tick_done",
		"first", summary.FirstReminders, "second", summary.SecondReminders, "final", summary.FinalReminders,
		"total_processed", summary.TotalProcessed, "aborted", summary.Aborted)
	if cerr := ctx.Err(); cerr != nil {
		return summary, fmt.Errorf("reminder tick aborted: %w", cerr)
	}
	return summary, nil
}

// loadSettings returns nil when the singleton row has not been seeded.
func (s *Service) loadSettings(ctx context.Context) (*models.ReminderSettings, error) {
	var settings models.ReminderSettings
	err := s.db.WithContext(ctx).Order("id").Take(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder settings: %w", err)
	}
	return &settings, nil
}
