package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveGatewayStatus(t *testing.T) {
	tests := []struct {
		raw     string
		status  PaymentStatus
		outcome GatewayOutcome
	}{
		{"CAPTURED", PaymentStatusCompleted, GatewayOutcomeApply},
		{" captured ", PaymentStatusCompleted, GatewayOutcomeApply},
		{"DECLINED", PaymentStatusFailed, GatewayOutcomeApply},
		{"FAILED", PaymentStatusFailed, GatewayOutcomeApply},
		{"CANCELLED", PaymentStatusFailed, GatewayOutcomeApply},
		{"REFUNDED", PaymentStatusRefunded, GatewayOutcomeApply},
		{"INITIATED", "", GatewayOutcomeAcknowledge},
		{"PENDING", "", GatewayOutcomeAcknowledge},
		{"ABANDONED", "", GatewayOutcomeUnknown},
		{"", "", GatewayOutcomeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			status, outcome := ResolveGatewayStatus(tt.raw)
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.outcome, outcome)
		})
	}
}

func TestPaymentStatus_GatewayLabelRoundTrip(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded} {
		back, outcome := ResolveGatewayStatus(s.GatewayLabel())
		require.Equal(t, GatewayOutcomeApply, outcome)
		require.Equal(t, s, back)
	}
}

func TestReminderType_Prerequisite(t *testing.T) {
	require.Equal(t, ReminderType(""), ReminderTypeFirst.Prerequisite())
	require.Equal(t, ReminderTypeFirst, ReminderTypeSecond.Prerequisite())
	require.Equal(t, ReminderTypeSecond, ReminderTypeFinal.Prerequisite())
	require.Equal(t, "payment_reminder_final", ReminderTypeFinal.TemplateID())
	require.False(t, ReminderType("THIRD").Valid())
}
