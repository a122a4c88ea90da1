package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/internal/platform/db"
	"github.com/fatflowers/letterpay/pkg/tool"
	"github.com/fatflowers/letterpay/pkg/types"
)

func TestGetReminderStatistic(t *testing.T) {
	ctx := context.Background()
	gdb := db.OpenTestDB(t)
	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	reminders := []*models.PaymentReminder{
		{RequestID: 1, ReminderType: types.ReminderTypeFirst, Status: types.ReminderStatusDelivered, SentAt: day1},
		{RequestID: 2, ReminderType: types.ReminderTypeFirst, Status: types.ReminderStatusFailed, SentAt: day1},
		{RequestID: 1, ReminderType: types.ReminderTypeSecond, Status: types.ReminderStatusDelivered, SentAt: day2},
	}
	for _, r := range reminders {
		r.ID = tool.GenerateUUIDV7()
	}
	require.NoError(t, gdb.Create(reminders).Error)
	require.NoError(t, gdb.Create([]*models.Request{
		{ID: 1, Purpose: "a", Status: types.RequestStatusPending, CreatedAt: day1},
		{ID: 2, Purpose: "b", Status: types.RequestStatusPending, CreatedAt: day1},
		{ID: 3, Purpose: "c", Status: types.RequestStatusInProgress, CreatedAt: day1},
	}).Error)
	require.NoError(t, gdb.Create([]*models.Payment{
		{ID: tool.GenerateUUIDV7(), RequestID: 3, Amount: 5000, Status: types.PaymentStatusCompleted, TransactionID: "RF3", PaymentDate: day2},
		{ID: tool.GenerateUUIDV7(), RequestID: 2, Amount: 7000, Status: types.PaymentStatusFailed, TransactionID: "RF2", PaymentDate: day2},
	}).Error)

	svc := New(gdb)
	res, err := svc.GetReminderStatistic(ctx, &ReminderStatisticRequest{
		DataItems: []*ReminderStatisticDataItem{
			{ID: StatisticTypeDailyReminderCount},
			{ID: StatisticTypeDailyReminderDeliveryRate},
			{ID: StatisticTypeDailyPaidAmount},
			{ID: StatisticTypeUnpaidRequestCount},
		},
	})
	require.NoError(t, err)

	require.Equal(t, []ReminderStatisticResponseDataItem{
		{Date: "2026-03-02", Label: "second:DELIVERED", Value: 1},
		{Date: "2026-03-01", Label: "first:DELIVERED", Value: 1},
		{Date: "2026-03-01", Label: "first:FAILED", Value: 1},
	}, res.DataItems[StatisticTypeDailyReminderCount])

	rates := res.DataItems[StatisticTypeDailyReminderDeliveryRate]
	require.Len(t, rates, 2)
	require.Equal(t, "2026-03-01", rates[1].Date)
	require.EqualValues(t, 5000, rates[1].Value)

	require.Equal(t, []ReminderStatisticResponseDataItem{
		{Date: "2026-03-02", Value: 5000, Value2: 1},
	}, res.DataItems[StatisticTypeDailyPaidAmount])

	require.Equal(t, []ReminderStatisticResponseDataItem{
		{Label: "PENDING", Value: 2},
	}, res.DataItems[StatisticTypeUnpaidRequestCount])

	res, err = svc.GetReminderStatistic(ctx, &ReminderStatisticRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		DataItems: []*ReminderStatisticDataItem{{ID: StatisticTypeDailyReminderCount}},
	})
	require.NoError(t, err)
	require.Len(t, res.DataItems[StatisticTypeDailyReminderCount], 1)
}

func TestGetReminderStatistic_Invalid(t *testing.T) {
	svc := New(db.OpenTestDB(t))
	_, err := svc.GetReminderStatistic(context.Background(), &ReminderStatisticRequest{
		DataItems: []*ReminderStatisticDataItem{{ID: "renewal_success_rate"}},
	})
	require.Error(t, err)

	_, err = svc.GetReminderStatistic(context.Background(), &ReminderStatisticRequest{StartDate: "03/01/2026"})
	require.Error(t, err)
}
