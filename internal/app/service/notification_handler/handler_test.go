package notification_handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	notificationlog "github.com/fatflowers/letterpay/internal/app/service/notification_log"
	"github.com/fatflowers/letterpay/internal/app/service/reconciliation"
	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/internal/platform/db"
)

type stubReconciler struct {
	res   *reconciliation.Result
	err   error
	calls int
}

func (s *stubReconciler) Reconcile(ctx context.Context, ev *reconciliation.Event) (*reconciliation.Result, error) {
	s.calls++
	return s.res, s.err
}

func newTestHandler(t *testing.T, rec Reconciler) (*NotificationHandler, *notificationlog.Service, func() []models.PaymentNotificationLog) {
	t.Helper()
	gdb := db.OpenTestDB(t)
	logs := notificationlog.New(gdb, zap.NewNop().Sugar())
	h := &NotificationHandler{notifSvc: logs, reconciler: rec, Logger: zap.NewNop().Sugar()}
	rows := func() []models.PaymentNotificationLog {
		logs.Wait()
		var out []models.PaymentNotificationLog
		require.NoError(t, gdb.Order("created_at, id").Find(&out).Error)
		return out
	}
	return h, logs, rows
}

func statuses(rows []models.PaymentNotificationLog) []models.PaymentNotificationLogStatus {
	out := make([]models.PaymentNotificationLogStatus, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Status)
	}
	return out
}

func TestHandleNotification_Handled(t *testing.T) {
	rec := &stubReconciler{res: &reconciliation.Result{Action: reconciliation.ActionCreated, TransactionID: "RF99"}}
	h, _, rows := newTestHandler(t, rec)

	res, err := h.HandleNotification(context.Background(), []byte(`{"status":"CAPTURED","reference":{"transaction":"RF99"},"metadata":{"customerEmail":"a@b.com"}}`))
	require.NoError(t, err)
	require.Equal(t, reconciliation.ActionCreated, res.Action)
	require.Equal(t, 1, rec.calls)

	got := rows()
	require.ElementsMatch(t, []models.PaymentNotificationLogStatus{
		models.PaymentNotificationLogStatusReceived,
		models.PaymentNotificationLogStatusHandled,
	}, statuses(got))
	for _, r := range got {
		require.Equal(t, "RF99", r.TransactionID)
		require.Equal(t, "CAPTURED", r.GatewayStatus)
	}
}

func TestHandleNotification_Malformed(t *testing.T) {
	rec := &stubReconciler{}
	h, _, rows := newTestHandler(t, rec)

	_, err := h.HandleNotification(context.Background(), []byte(`not-json`))
	require.True(t, IsMalformed(err))
	require.Zero(t, rec.calls)
	require.ElementsMatch(t, []models.PaymentNotificationLogStatus{
		models.PaymentNotificationLogStatusReceived,
		models.PaymentNotificationLogStatusIgnored,
	}, statuses(rows()))
}

func TestHandleNotification_Failed(t *testing.T) {
	rec := &stubReconciler{err: errors.New("db down")}
	h, _, rows := newTestHandler(t, rec)

	_, err := h.HandleNotification(context.Background(), []byte(`{"status":"CAPTURED","reference":{"transaction":"RF1"}}`))
	require.Error(t, err)
	require.False(t, IsMalformed(err))
	require.ElementsMatch(t, []models.PaymentNotificationLogStatus{
		models.PaymentNotificationLogStatusReceived,
		models.PaymentNotificationLogStatusHandleFailed,
	}, statuses(rows()))
}
