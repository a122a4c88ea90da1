package mailer

import "context"

// Template ids understood by every Sender.
const (
	TemplatePaymentReminderFirst  = "payment_reminder_first"
	TemplatePaymentReminderSecond = "payment_reminder_second"
	TemplatePaymentReminderFinal  = "payment_reminder_final"
	TemplateAdminPaymentReceived  = "admin_payment_received"
)

// SendResult reports a delivery outcome. Ordinary delivery failures are
// reported here, never as a Go error or panic.
type SendResult struct {
	Success bool
	Error   string
}

func Failed(err error) SendResult {
	return SendResult{Success: false, Error: err.Error()}
}

// Sender delivers one templated email.
type Sender interface {
	Send(ctx context.Context, to string, templateID string, args map[string]any) SendResult
}
