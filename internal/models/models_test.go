package models

import (
	"testing"
	"time"

	"github.com/fatflowers/letterpay/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestTableNames(t *testing.T) {
	require.Equal(t, "users", User{}.TableName())
	require.Equal(t, "requests", Request{}.TableName())
	require.Equal(t, "payments", Payment{}.TableName())
	require.Equal(t, "payment_reminders", PaymentReminder{}.TableName())
	require.Equal(t, "reminder_settings", ReminderSettings{}.TableName())
}

func TestReminderSettings_ThresholdFor(t *testing.T) {
	s := &ReminderSettings{FirstReminderHours: 24, SecondReminderHours: 72, FinalReminderHours: 168}
	require.Equal(t, 24*time.Hour, s.ThresholdFor(types.ReminderTypeFirst))
	require.Equal(t, 72*time.Hour, s.ThresholdFor(types.ReminderTypeSecond))
	require.Equal(t, 168*time.Hour, s.ThresholdFor(types.ReminderTypeFinal))
	require.Equal(t, time.Duration(0), s.ThresholdFor("OTHER"))
}
