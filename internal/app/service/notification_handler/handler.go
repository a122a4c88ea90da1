package notification_handler

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	notificationlog "github.com/fatflowers/letterpay/internal/app/service/notification_log"
	"github.com/fatflowers/letterpay/internal/app/service/reconciliation"
	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/pkg/logctx"
	"github.com/fatflowers/letterpay/pkg/metrics"
)

const gateway = "card"

// Reconciler is the part of reconciliation.Service the handler needs.
type Reconciler interface {
	Reconcile(ctx context.Context, ev *reconciliation.Event) (*reconciliation.Result, error)
}

type NotificationHandler struct {
	notifSvc   *notificationlog.Service
	reconciler Reconciler
	Logger     *zap.SugaredLogger
}

func NewNotificationHandler(notif *notificationlog.Service, rec *reconciliation.Service, log *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{notifSvc: notif, reconciler: rec, Logger: log}
}

// HandleNotification parses, logs and reconciles one webhook body. Errors
// wrapping ErrMalformedEvent should be acknowledged; any other error should
// be reported to the gateway so it retries.
func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) (res *reconciliation.Result, resErr error) {
	l := logctx.FromCtx(ctx, h.Logger)
	data := rawData(body)

	ev, parseErr := ParseEvent(body)
	var transactionID, gatewayStatus string
	if ev != nil {
		transactionID, gatewayStatus = ev.TransactionID, ev.Status
	}
	newLog := func(status models.PaymentNotificationLogStatus, result *datatypes.JSON) *models.PaymentNotificationLog {
		return &models.PaymentNotificationLog{
			Gateway:       gateway,
			TransactionID: transactionID,
			GatewayStatus: gatewayStatus,
			Data:          data,
			Result:        result,
			Status:        status,
		}
	}

	h.notifSvc.Save(ctx, newLog(models.PaymentNotificationLogStatusReceived, nil))
	l.Infow("webhook_received", "transaction_id", transactionID, "gateway_status", gatewayStatus)

	if parseErr != nil {
		metrics.ObserveWebhookEvent("malformed")
		l.Warnw("webhook_malformed", "err", parseErr)
		h.notifSvc.Save(ctx, newLog(models.PaymentNotificationLogStatusIgnored,
			notificationlog.ResultJSON(map[string]any{"error": parseErr.Error()})))
		return nil, parseErr
	}

	defer func() {
		resMap := map[string]any{"result": res}
		status := models.PaymentNotificationLogStatusHandled
		switch {
		case resErr != nil:
			resMap["error"] = resErr.Error()
			status = models.PaymentNotificationLogStatusHandleFailed
		case res != nil && res.Action == reconciliation.ActionIgnored:
			status = models.PaymentNotificationLogStatusIgnored
		}
		h.notifSvc.Save(ctx, newLog(status, notificationlog.ResultJSON(resMap)))
	}()

	return h.reconciler.Reconcile(ctx, ev)
}

func rawData(body []byte) datatypes.JSON {
	if json.Valid(body) {
		return datatypes.JSON(body)
	}
	b, err := json.Marshal(map[string]string{"raw": string(body)})
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// IsMalformed reports whether err means the delivery should be acknowledged
// without retry.
func IsMalformed(err error) bool { return errors.Is(err, ErrMalformedEvent) }

var Module = fx.Options(
	fx.Provide(NewNotificationHandler),
)
