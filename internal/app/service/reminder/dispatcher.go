package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/internal/platform/mailer"
	"github.com/fatflowers/letterpay/pkg/logctx"
	"github.com/fatflowers/letterpay/pkg/metrics"
	"github.com/fatflowers/letterpay/pkg/tool"
	"github.com/fatflowers/letterpay/pkg/types"
)

const (
	// DetailStatusDuplicate marks a candidate whose tier row was written by
	// someone else between planning and recording.
	DetailStatusDuplicate = "duplicate"
	// DetailStatusAborted marks a candidate left untouched because the caller
	// went away. No row is written, so a later tick picks it up again.
	DetailStatusAborted = "aborted"
)

type TierCount struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type Detail struct {
	RequestID    uint64             `json:"requestId"`
	UserID       uint64             `json:"userId"`
	Email        string             `json:"email"`
	ReminderType types.ReminderType `json:"reminderType"`
	Status       string             `json:"status"`
	Note         string             `json:"note,omitempty"`
}

// Summary is the result of one tick.
type Summary struct {
	FirstReminders  TierCount  `json:"firstReminders"`
	SecondReminders TierCount  `json:"secondReminders"`
	FinalReminders  TierCount  `json:"finalReminders"`
	TotalProcessed  int        `json:"totalProcessed"`
	Deferred        int        `json:"deferred,omitempty"`
	Aborted         int        `json:"aborted,omitempty"`
	Skipped         bool       `json:"skipped,omitempty"`
	SkipReason      SkipReason `json:"skipReason,omitempty"`
	Details         []Detail   `json:"details"`
}

func (s *Summary) count(tier types.ReminderType) *TierCount {
	switch tier {
	case types.ReminderTypeFirst:
		return &s.FirstReminders
	case types.ReminderTypeSecond:
		return &s.SecondReminders
	default:
		return &s.FinalReminders
	}
}

func (s *Summary) add(d Detail) {
	s.Details = append(s.Details, d)
	c := s.count(d.ReminderType)
	switch d.Status {
	case string(types.ReminderStatusDelivered):
		c.Sent++
		s.TotalProcessed++
	case string(types.ReminderStatusFailed):
		c.Failed++
		s.TotalProcessed++
	case DetailStatusAborted:
		s.Aborted++
	}
}

func newSummary() *Summary { return &Summary{Details: []Detail{}} }

// Dispatcher sends a plan's reminders tier by tier and records one
// PaymentReminder row per candidate.
type Dispatcher struct {
	db      *gorm.DB
	sender  mailer.Sender
	log     *zap.SugaredLogger
	timeout time.Duration
	workers int
	now     func() time.Time
}

func NewDispatcher(db *gorm.DB, sender mailer.Sender, log *zap.SugaredLogger, timeout time.Duration, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{db: db, sender: sender, log: log, timeout: timeout, workers: workers, now: time.Now}
}

// Dispatch never fails as a whole: per-candidate send or write errors are
// recorded in the summary and processing continues. Once ctx is done the
// remaining candidates are reported as aborted and nothing is written for them.
func (d *Dispatcher) Dispatch(ctx context.Context, plan *Plan) *Summary {
	summary := newSummary()
	summary.Deferred = plan.Deferred
	for _, tier := range types.ReminderTiers {
		for _, detail := range d.dispatchTier(ctx, tier, plan.Tier(tier)) {
			summary.add(detail)
		}
	}
	return summary
}

func (d *Dispatcher) dispatchTier(ctx context.Context, tier types.ReminderType, list []*Candidate) []Detail {
	details := make([]Detail, len(list))
	var g errgroup.Group
	g.SetLimit(d.workers)
	for i, c := range list {
		g.Go(func() error {
			if ctx.Err() != nil {
				details[i] = abortedDetail(tier, c)
				return nil
			}
			details[i] = d.process(ctx, tier, c)
			return nil
		})
	}
	_ = g.Wait()
	return details
}

func (d *Dispatcher) process(ctx context.Context, tier types.ReminderType, c *Candidate) Detail {
	l := logctx.FromCtx(ctx, d.log).With("request_id", c.RequestID, "reminder_type", tier)
	detail := Detail{RequestID: c.RequestID, UserID: c.UserID, Email: c.Email, ReminderType: tier}

	name := c.Name
	if name == "" {
		name = c.Email
	}
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	res := d.sender.Send(sendCtx, c.Email, tier.TemplateID(), map[string]any{
		"name":      name,
		"requestId": c.RequestID,
		"purpose":   c.Purpose,
	})
	cancel()
	if !res.Success && ctx.Err() != nil {
		// The caller is gone, not the mail server: leave no row behind.
		l.Infow("reminder_send_aborted", "err", res.Error)
		return abortedDetail(tier, c)
	}

	status := types.ReminderStatusFromSend(res.Success)
	note := fmt.Sprintf("%s reminder sent to %s", tier.Label(), c.Email)
	if !res.Success {
		note = fmt.Sprintf("%s reminder to %s failed: %s", tier.Label(), c.Email, res.Error)
		l.Warnw("reminder_send_failed", "err", res.Error)
	}

	row := &models.PaymentReminder{
		ID:           tool.GenerateUUIDV7(),
		RequestID:    c.RequestID,
		UserID:       c.UserID,
		ReminderType: tier,
		Status:       status,
		Note:         note,
		SentAt:       d.now().UTC(),
	}
	ins := d.db.WithContext(context.WithoutCancel(ctx)).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "request_id"}, {Name: "reminder_type"}},
			DoNothing: true,
		}).
		Create(row)
	switch {
	case ins.Error != nil:
		l.Errorw("reminder_record_failed", "err", ins.Error)
		detail.Status = string(types.ReminderStatusFailed)
		detail.Note = fmt.Sprintf("%s; record failed: %v", note, ins.Error)
	case ins.RowsAffected == 0:
		l.Infow("reminder_already_recorded")
		detail.Status = DetailStatusDuplicate
		detail.Note = "reminder already recorded for this tier"
		return detail
	default:
		detail.Status = string(status)
		detail.Note = note
	}
	metrics.ObserveReminder(tier.Label(), detail.Status)
	return detail
}

func abortedDetail(tier types.ReminderType, c *Candidate) Detail {
	return Detail{
		RequestID:    c.RequestID,
		UserID:       c.UserID,
		Email:        c.Email,
		ReminderType: tier,
		Status:       DetailStatusAborted,
		Note:         "tick aborted before the reminder was sent",
	}
}
