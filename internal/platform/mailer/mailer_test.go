package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/letterpay/pkg/config"
)

func TestRenderer_RendersEveryTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	args := map[string]any{"name": "Sara", "requestId": uint64(70), "purpose": "Birthday letter", "transactionId": "RF70"}
	for _, id := range []string{TemplatePaymentReminderFirst, TemplatePaymentReminderSecond, TemplatePaymentReminderFinal, TemplateAdminPaymentReceived} {
		subject, body, err := r.Render(id, args)
		require.NoError(t, err, id)
		require.Contains(t, subject, "70")
		require.NotEmpty(t, body)
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	_, _, err = r.Render("nope", nil)
	require.Error(t, err)
}

func TestSMTPSender_FailureIsReportedNotRaised(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	// Port 1 on localhost refuses connections.
	s := NewSMTP(config.SMTPConfig{Host: "127.0.0.1", Port: 1, From: "noreply@example.com"}, r)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res := s.Send(ctx, "a@b.com", TemplatePaymentReminderFirst, map[string]any{"requestId": 1})
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)

	res = s.Send(ctx, "", TemplatePaymentReminderFirst, nil)
	require.False(t, res.Success)
}

func TestLogSender_HonoursCancelledContext(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	s := NewLogSender(r, zap.NewNop().Sugar())

	require.True(t, s.Send(context.Background(), "a@b.com", TemplatePaymentReminderFirst, map[string]any{"requestId": 1}).Success)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.False(t, s.Send(ctx, "a@b.com", TemplatePaymentReminderFirst, map[string]any{"requestId": 1}).Success)
}

func TestBuildMessage_Headers(t *testing.T) {
	msg := string(buildMessage("from@x.com", "to@y.com", "Hi", "<p>x</p>"))
	require.Contains(t, msg, "To: to@y.com\r\n")
	require.Contains(t, msg, "Subject: Hi\r\n")
	require.Contains(t, msg, "Content-Type: text/html")
}
