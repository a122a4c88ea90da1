package reminder

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fatflowers/letterpay/internal/app/service/lifecycle"
	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/pkg/types"
)

type SkipReason string

const (
	SkipSettingsMissing SkipReason = "settings_missing"
	SkipInactive        SkipReason = "inactive"
	SkipDailyCapReached SkipReason = "daily_cap_reached"
)

// Candidate is one request due for a reminder of Tier.
type Candidate struct {
	RequestID uint64             `json:"requestId"`
	UserID    uint64             `json:"userId"`
	Email     string             `json:"email"`
	Name      string             `json:"name"`
	Purpose   string             `json:"purpose"`
	CreatedAt time.Time          `json:"createdAt"`
	Tier      types.ReminderType `json:"reminderType" gorm:"-"`
}

// Plan holds the per-tier worklists of one tick. The lists are disjoint by tier.
type Plan struct {
	First  []*Candidate `json:"first"`
	Second []*Candidate `json:"second"`
	Final  []*Candidate `json:"final"`
	// Deferred counts candidates left for a later tick by the daily headroom.
	Deferred int `json:"deferred"`
}

func (p *Plan) Tier(tier types.ReminderType) []*Candidate {
	switch tier {
	case types.ReminderTypeFirst:
		return p.First
	case types.ReminderTypeSecond:
		return p.Second
	case types.ReminderTypeFinal:
		return p.Final
	}
	return nil
}

func (p *Plan) setTier(tier types.ReminderType, list []*Candidate) {
	switch tier {
	case types.ReminderTypeFirst:
		p.First = list
	case types.ReminderTypeSecond:
		p.Second = list
	case types.ReminderTypeFinal:
		p.Final = list
	}
}

func (p *Plan) Len() int { return len(p.First) + len(p.Second) + len(p.Final) }

// Gate is the once-per-tick admission decision.
type Gate struct {
	Open      bool
	Reason    SkipReason
	SentToday int64
	// Headroom is how many reminders may still be sent today.
	Headroom int
}

// Policy decides which requests are due for which reminder tier.
type Policy struct {
	db  *gorm.DB
	loc *time.Location
}

func NewPolicy(db *gorm.DB, loc *time.Location) *Policy {
	if loc == nil {
		loc = time.Local
	}
	return &Policy{db: db, loc: loc}
}

// startOfDay returns midnight of now's day in the configured zone, as UTC.
// Timestamps are stored in UTC so SQLite's text comparison stays ordered.
func (p *Policy) startOfDay(now time.Time) time.Time {
	local := now.In(p.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.loc).UTC()
}

// Gate checks the active flag and the daily cap.
func (p *Policy) Gate(ctx context.Context, settings *models.ReminderSettings, now time.Time) (*Gate, error) {
	if settings == nil {
		return &Gate{Reason: SkipSettingsMissing}, nil
	}
	if !settings.IsActive {
		return &Gate{Reason: SkipInactive}, nil
	}
	var sent int64
	err := p.db.WithContext(ctx).Model(&models.PaymentReminder{}).
		Where("sent_at >= ?", p.startOfDay(now)).
		Count(&sent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reminders sent today: %w", err)
	}
	if sent >= int64(settings.MaxRemindersPerDay) {
		return &Gate{Reason: SkipDailyCapReached, SentToday: sent}, nil
	}
	return &Gate{Open: true, SentToday: sent, Headroom: settings.MaxRemindersPerDay - int(sent)}, nil
}

// Plan runs the three tier queries independently and trims the result to
// headroom in tier order. A headroom <= 0 means no trimming.
func (p *Policy) Plan(ctx context.Context, settings *models.ReminderSettings, now time.Time, headroom int) (*Plan, error) {
	plan := &Plan{}
	for _, tier := range types.ReminderTiers {
		list, err := p.candidates(ctx, settings, tier, now)
		if err != nil {
			return nil, err
		}
		plan.setTier(tier, list)
	}
	if headroom > 0 {
		left := headroom
		for _, tier := range types.ReminderTiers {
			list := plan.Tier(tier)
			if len(list) > left {
				plan.Deferred += len(list) - left
				list = list[:left]
			}
			left -= len(list)
			plan.setTier(tier, list)
		}
	}
	return plan, nil
}

func (p *Policy) candidates(ctx context.Context, settings *models.ReminderSettings, tier types.ReminderType, now time.Time) ([]*Candidate, error) {
	q := p.db.WithContext(ctx).Table("requests").
		Select("requests.id AS request_id, users.id AS user_id, users.email AS email, users.name AS name, requests.purpose AS purpose, requests.created_at AS created_at").
		Joins("JOIN users ON users.id = requests.user_id").
		Where("requests.created_at < ?", now.Add(-settings.ThresholdFor(tier)).UTC()).
		Scopes(lifecycle.Unpaid).
		Where("NOT EXISTS (SELECT 1 FROM payment_reminders pr WHERE pr.request_id = requests.id AND pr.reminder_type = ?)", tier)

	if tier == types.ReminderTypeFirst {
		q = q.Where("requests.status = ?", types.RequestStatusPending)
	}
	if prev := tier.Prerequisite(); prev != "" {
		q = q.Where("EXISTS (SELECT 1 FROM payment_reminders pr WHERE pr.request_id = requests.id AND pr.reminder_type = ? AND pr.status = ?)",
			prev, types.ReminderStatusDelivered)
	}

	var out []*Candidate
	if err := q.Order("requests.created_at, requests.id").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to select %s reminder candidates: %w", tier.Label(), err)
	}
	for _, c := range out {
		c.Tier = tier
	}
	return out, nil
}
