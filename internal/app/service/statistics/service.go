package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/fatflowers/letterpay/internal/app/service/lifecycle"
	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/pkg/types"
)

type StatisticType string

const (
	// Reminder volume per day, labelled "<tier>:<status>".
	StatisticTypeDailyReminderCount StatisticType = "daily_reminder_count"
	// Delivered share of reminder attempts per day, in basis points.
	StatisticTypeDailyReminderDeliveryRate StatisticType = "daily_reminder_delivery_rate"
	// Completed payments per day: value is the amount, value2 the count.
	StatisticTypeDailyPaidAmount StatisticType = "daily_paid_amount"
	// Requests still waiting for a completed payment, by status.
	StatisticTypeUnpaidRequestCount StatisticType = "unpaid_request_count"
)

var statisticTypes = []StatisticType{
	StatisticTypeDailyReminderCount,
	StatisticTypeDailyReminderDeliveryRate,
	StatisticTypeDailyPaidAmount,
	StatisticTypeUnpaidRequestCount,
}

type ReminderStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type ReminderStatisticRequest struct {
	// StartDate and EndDate are inclusive YYYY-MM-DD bounds; either may be empty.
	StartDate string                       `json:"start_date"`
	EndDate   string                       `json:"end_date"`
	DataItems []*ReminderStatisticDataItem `json:"data_items"`
}

type dateRange struct {
	from, to *time.Time
}

func (r *ReminderStatisticRequest) dateRange() (dateRange, error) {
	var out dateRange
	if r.StartDate != "" {
		t, err := time.Parse(time.DateOnly, r.StartDate)
		if err != nil {
			return out, fmt.Errorf("invalid start_date: %w", err)
		}
		out.from = &t
	}
	if r.EndDate != "" {
		t, err := time.Parse(time.DateOnly, r.EndDate)
		if err != nil {
			return out, fmt.Errorf("invalid end_date: %w", err)
		}
		out.to = lo.ToPtr(t.AddDate(0, 0, 1))
	}
	return out, nil
}

func (r dateRange) scope(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if r.from != nil {
			db = db.Where(column+" >= ?", *r.from)
		}
		if r.to != nil {
			db = db.Where(column+" < ?", *r.to)
		}
		return db
	}
}

type ReminderStatisticResponseDataItem struct {
	Date   string `json:"date,omitempty"`
	Label  string `json:"label,omitempty"`
	Value  int64  `json:"value"`
	Value2 int64  `json:"value2,omitempty"`
	Value3 int64  `json:"value3,omitempty"`
}

type ReminderStatisticResponse struct {
	DataItems map[StatisticType][]ReminderStatisticResponseDataItem `json:"data_items"`
}

// Service provides the admin dashboard aggregates.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// dayOf renders a timestamp column as YYYY-MM-DD on both postgres and sqlite.
func dayOf(column string) string {
	return fmt.Sprintf("CAST(DATE(%s) AS TEXT)", column)
}

type reminderCountRow struct {
	Date         string
	ReminderType types.ReminderType
	Status       types.ReminderStatus
	Value        int64
}

func (s *Service) getDailyReminderCount(ctx context.Context, r dateRange) ([]ReminderStatisticResponseDataItem, error) {
	var rows []reminderCountRow
	day := dayOf("sent_at")
	err := s.db.WithContext(ctx).Model(&models.PaymentReminder{}).
		Select(day+" AS date, reminder_type, status, count(*) AS value").
		Scopes(r.scope("sent_at")).
		Group(day).Group("reminder_type").Group("status").
		Order("date DESC").Order("reminder_type").Order("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(rows, func(row reminderCountRow, _ int) ReminderStatisticResponseDataItem {
		return ReminderStatisticResponseDataItem{
			Date:  row.Date,
			Label: fmt.Sprintf("%s:%s", row.ReminderType.Label(), row.Status),
			Value: row.Value,
		}
	}), nil
}

func (s *Service) getDailyReminderDeliveryRate(ctx context.Context, r dateRange) ([]ReminderStatisticResponseDataItem, error) {
	var results []ReminderStatisticResponseDataItem
	day := dayOf("sent_at")
	err := s.db.WithContext(ctx).Model(&models.PaymentReminder{}).
		Select(day+" AS date, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS value3, count(*) AS value2", types.ReminderStatusDelivered).
		Scopes(r.scope("sent_at")).
		Group(day).
		Order("date DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].Value2 > 0 {
			results[i].Value = results[i].Value3 * 10000 / results[i].Value2
		}
	}
	return results, nil
}

func (s *Service) getDailyPaidAmount(ctx context.Context, r dateRange) ([]ReminderStatisticResponseDataItem, error) {
	var results []ReminderStatisticResponseDataItem
	day := dayOf("payment_date")
	err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Select(day+" AS date, SUM(amount) AS value, count(*) AS value2").
		Where("status = ?", types.PaymentStatusCompleted).
		Scopes(r.scope("payment_date")).
		Group(day).
		Order("date DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getUnpaidRequestCount(ctx context.Context, r dateRange) ([]ReminderStatisticResponseDataItem, error) {
	var results []ReminderStatisticResponseDataItem
	err := s.db.WithContext(ctx).Model(&models.Request{}).
		Select("status AS label, count(*) AS value").
		Scopes(lifecycle.Unpaid, r.scope("requests.created_at")).
		Where("status IN ?", []types.RequestStatus{types.RequestStatusPending, types.RequestStatusInProgress}).
		Group("status").
		Order("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getStatistic(ctx context.Context, r dateRange, item *ReminderStatisticDataItem) ([]ReminderStatisticResponseDataItem, error) {
	switch item.ID {
	case StatisticTypeDailyReminderCount:
		return s.getDailyReminderCount(ctx, r)
	case StatisticTypeDailyReminderDeliveryRate:
		return s.getDailyReminderDeliveryRate(ctx, r)
	case StatisticTypeDailyPaidAmount:
		return s.getDailyPaidAmount(ctx, r)
	case StatisticTypeUnpaidRequestCount:
		return s.getUnpaidRequestCount(ctx, r)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", item.ID)
	}
}

// GetReminderStatistic computes the requested data items concurrently.
func (s *Service) GetReminderStatistic(ctx context.Context, request *ReminderStatisticRequest) (*ReminderStatisticResponse, error) {
	if request == nil {
		return nil, fmt.Errorf("nil request")
	}
	r, err := request.dateRange()
	if err != nil {
		return nil, err
	}
	for _, item := range request.DataItems {
		if item == nil || !lo.Contains(statisticTypes, item.ID) {
			return nil, fmt.Errorf("invalid data item: %v", item)
		}
	}

	entries := make([]lo.Entry[StatisticType, []ReminderStatisticResponseDataItem], len(request.DataItems))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range request.DataItems {
		g.Go(func() error {
			res, err := s.getStatistic(gctx, r, item)
			if err != nil {
				return fmt.Errorf("%s: %w", item.ID, err)
			}
			entries[i] = lo.Entry[StatisticType, []ReminderStatisticResponseDataItem]{Key: item.ID, Value: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ReminderStatisticResponse{DataItems: lo.FromEntries(entries)}, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
