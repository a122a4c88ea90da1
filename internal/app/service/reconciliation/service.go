// Package reconciliation applies gateway payment events to requests and
// payments exactly once per transaction reference.
package reconciliation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/letterpay/internal/app/service/lifecycle"
	"github.com/fatflowers/letterpay/internal/app/service/pricing"
	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/internal/platform/mailer"
	"github.com/fatflowers/letterpay/pkg/config"
	"github.com/fatflowers/letterpay/pkg/logctx"
	"github.com/fatflowers/letterpay/pkg/metrics"
	"github.com/fatflowers/letterpay/pkg/tool"
	"github.com/fatflowers/letterpay/pkg/types"
)

const defaultPaymentMethod = "card"

type Action string

const (
	ActionIgnored      Action = "ignored"
	ActionAcknowledged Action = "acknowledged"
	ActionDuplicate    Action = "duplicate"
	ActionUpdated      Action = "updated"
	ActionAttached     Action = "attached"
	ActionCreated      Action = "created"
)

// Result describes what a single event did to the ledger.
type Result struct {
	Action        Action              `json:"action"`
	Reason        string              `json:"reason,omitempty"`
	TransactionID string              `json:"transactionId"`
	PaymentID     string              `json:"paymentId,omitempty"`
	PaymentStatus types.PaymentStatus `json:"paymentStatus,omitempty"`
	RequestID     uint64              `json:"requestId,omitempty"`
	UserID        uint64              `json:"userId,omitempty"`
	Amount        int64               `json:"amount,omitempty"`
}

// Mutated reports whether the event changed persisted state.
func (r *Result) Mutated() bool {
	switch r.Action {
	case ActionUpdated, ActionAttached, ActionCreated:
		return true
	}
	return false
}

// errDuplicateDelivery rolls back a unit whose payment insert lost the race
// on transaction_id.
var errDuplicateDelivery = errors.New("payment already recorded for transaction")

type Service struct {
	db     *gorm.DB
	cfg    *config.Config
	prices pricing.Resolver
	sender mailer.Sender
	log    *zap.SugaredLogger
	now    func() time.Time
}

func NewService(db *gorm.DB, cfg *config.Config, prices pricing.Resolver, sender mailer.Sender, log *zap.SugaredLogger) *Service {
	return &Service{db: db, cfg: cfg, prices: prices, sender: sender, log: log, now: time.Now}
}

// Reconcile applies ev. A nil error means the event was handled or safely
// ignored; a non-nil error is a storage failure the gateway should retry.
func (s *Service) Reconcile(ctx context.Context, ev *Event) (*Result, error) {
	l := logctx.FromCtx(ctx, s.log).With("transaction_id", ev.TransactionID, "gateway_status", ev.Status)

	res, err := s.reconcile(ctx, l, ev)
	if err != nil {
		metrics.ObserveWebhookEvent("error")
		l.Errorw("webhook_reconcile_failed", "err", err)
		return nil, err
	}
	metrics.ObserveWebhookEvent(string(res.Action))
	l.Infow("webhook_reconciled", "action", res.Action, "reason", res.Reason, "request_id", res.RequestID)

	if res.Mutated() && res.PaymentStatus == types.PaymentStatusCompleted {
		s.notifyAdmin(ctx, l, ev, res)
	}
	return res, nil
}

func (s *Service) reconcile(ctx context.Context, l *zap.SugaredLogger, ev *Event) (*Result, error) {
	status, outcome := types.ResolveGatewayStatus(ev.Status)
	switch outcome {
	case types.GatewayOutcomeUnknown:
		l.Warnw("unknown gateway status")
		return &Result{Action: ActionIgnored, Reason: "unknown_status", TransactionID: ev.TransactionID}, nil
	case types.GatewayOutcomeAcknowledge:
		return &Result{Action: ActionAcknowledged, TransactionID: ev.TransactionID}, nil
	}

	var res *Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = s.apply(ctx, l, tx, ev, status)
		return err
	})
	if errors.Is(err, errDuplicateDelivery) {
		return &Result{Action: ActionDuplicate, Reason: "concurrent_delivery", TransactionID: ev.TransactionID, PaymentStatus: status}, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) apply(ctx context.Context, l *zap.SugaredLogger, tx *gorm.DB, ev *Event, status types.PaymentStatus) (*Result, error) {
	var existing models.Payment
	err := tx.Where("transaction_id = ?", ev.TransactionID).Take(&existing).Error
	switch {
	case err == nil:
		return s.updatePayment(ctx, l, tx, &existing, status)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	if status != types.PaymentStatusCompleted {
		// Failures and refunds for unknown transactions have nothing to attach to.
		return &Result{Action: ActionIgnored, Reason: "no_payment_for_status", TransactionID: ev.TransactionID, PaymentStatus: status}, nil
	}
	if ev.Metadata.ExistingRequestID != 0 {
		return s.attachPayment(ctx, l, tx, ev)
	}
	if !ev.Metadata.CreatesRequest() {
		l.Warnw("unsupported request type", "request_type", ev.Metadata.RequestType)
		return &Result{Action: ActionIgnored, Reason: "unsupported_request_type", TransactionID: ev.TransactionID}, nil
	}
	return s.createRequest(ctx, l, tx, ev)
}

func (s *Service) updatePayment(ctx context.Context, l *zap.SugaredLogger, tx *gorm.DB, p *models.Payment, status types.PaymentStatus) (*Result, error) {
	res := &Result{
		TransactionID: p.TransactionID,
		PaymentID:     p.ID,
		PaymentStatus: status,
		RequestID:     p.RequestID,
		Amount:        p.Amount,
	}
	if p.Status == status {
		res.Action = ActionDuplicate
		return res, nil
	}

	updates := map[string]any{"status": status}
	if status == types.PaymentStatusCompleted {
		updates["payment_date"] = s.now().UTC()
	}
	upd := tx.Model(&models.Payment{}).Where("id = ? AND status = ?", p.ID, p.Status).Updates(updates)
	if upd.Error != nil {
		return nil, fmt.Errorf("failed to update payment: %w", upd.Error)
	}
	if upd.RowsAffected == 0 {
		res.Action = ActionDuplicate
		res.Reason = "concurrent_update"
		return res, nil
	}
	if status == types.PaymentStatusCompleted {
		if err := s.startRequest(ctx, l, tx, p.RequestID); err != nil {
			return nil, err
		}
	}
	res.Action = ActionUpdated
	return res, nil
}

func (s *Service) attachPayment(ctx context.Context, l *zap.SugaredLogger, tx *gorm.DB, ev *Event) (*Result, error) {
	requestID := ev.Metadata.ExistingRequestID
	var req models.Request
	if err := tx.Take(&req, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warnw("payment references unknown request", "request_id", requestID)
			return &Result{Action: ActionIgnored, Reason: "request_not_found", TransactionID: ev.TransactionID, RequestID: requestID}, nil
		}
		return nil, fmt.Errorf("failed to load request: %w", err)
	}

	payment, err := s.insertPayment(tx, ev, req.ID, req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.startRequest(ctx, l, tx, req.ID); err != nil {
		return nil, err
	}
	return &Result{
		Action:        ActionAttached,
		TransactionID: ev.TransactionID,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
		RequestID:     req.ID,
		UserID:        derefID(req.UserID),
		Amount:        payment.Amount,
	}, nil
}

func (s *Service) createRequest(ctx context.Context, l *zap.SugaredLogger, tx *gorm.DB, ev *Event) (*Result, error) {
	md := ev.Metadata
	if md.Email() == "" {
		l.Warnw("completed payment without customer email")
		return &Result{Action: ActionIgnored, Reason: "missing_customer_email", TransactionID: ev.TransactionID}, nil
	}
	user, err := s.findOrCreateUser(tx, md)
	if err != nil {
		return nil, err
	}

	req := &models.Request{
		Purpose:   md.Purpose,
		Recipient: md.Recipient,
		Price:     s.prices.PriceFor(md.Purpose),
		Status:    types.RequestStatusPending,
		UserID:    &user.ID,
	}
	if len(md.Payload) > 0 {
		raw, err := json.Marshal(md.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request payload: %w", err)
		}
		req.Payload = datatypes.JSON(raw)
	}
	if err := tx.Create(req).Error; err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	payment, err := s.insertPayment(tx, ev, req.ID, req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.startRequest(ctx, l, tx, req.ID); err != nil {
		return nil, err
	}
	return &Result{
		Action:        ActionCreated,
		TransactionID: ev.TransactionID,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
		RequestID:     req.ID,
		UserID:        user.ID,
		Amount:        payment.Amount,
	}, nil
}

func (s *Service) findOrCreateUser(tx *gorm.DB, md Metadata) (*models.User, error) {
	user := &models.User{Email: md.Email(), Name: md.CustomerName, Phone: md.CustomerPhone}
	ins := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(user)
	if ins.Error != nil {
		return nil, fmt.Errorf("failed to create user: %w", ins.Error)
	}
	if ins.RowsAffected > 0 && user.ID != 0 {
		return user, nil
	}
	var found models.User
	if err := tx.Where("email = ?", md.Email()).Take(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &found, nil
}

// insertPayment records a COMPLETED payment, returning errDuplicateDelivery
// when another delivery already holds the transaction id.
func (s *Service) insertPayment(tx *gorm.DB, ev *Event, requestID uint64, amount int64) (*models.Payment, error) {
	method := ev.Metadata.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}
	p := &models.Payment{
		ID:            tool.GenerateUUIDV7(),
		RequestID:     requestID,
		Amount:        amount,
		PaymentMethod: method,
		Status:        types.PaymentStatusCompleted,
		TransactionID: ev.TransactionID,
		PaymentDate:   s.now().UTC(),
	}
	ins := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "transaction_id"}}, DoNothing: true}).Create(p)
	if ins.Error != nil {
		return nil, fmt.Errorf("failed to create payment: %w", ins.Error)
	}
	if ins.RowsAffected == 0 {
		return nil, errDuplicateDelivery
	}
	return p, nil
}

// startRequest moves a paid request to IN_PROGRESS. Requests that are already
// closed keep their status; the payment is still recorded.
func (s *Service) startRequest(ctx context.Context, l *zap.SugaredLogger, tx *gorm.DB, requestID uint64) error {
	_, err := lifecycle.Transition(ctx, tx, requestID, types.RequestStatusInProgress)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		l.Warnw("request not moved to in-progress", "request_id", requestID, "err", err)
		return nil
	case errors.Is(err, lifecycle.ErrRequestNotFound):
		l.Warnw("payment belongs to missing request", "request_id", requestID)
		return nil
	default:
		return err
	}
}

func (s *Service) notifyAdmin(ctx context.Context, l *zap.SugaredLogger, ev *Event, res *Result) {
	to := s.cfg.Notification.AdminEmail
	if to == "" {
		return
	}
	timeout := s.cfg.Reminders.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	sent := s.sender.Send(sendCtx, to, mailer.TemplateAdminPaymentReceived, map[string]any{
		"action":        string(res.Action),
		"requestId":     res.RequestID,
		"transactionId": res.TransactionID,
		"amount":        formatAmount(res.Amount, s.cfg.Pricing.Currency),
		"purpose":       ev.Metadata.Purpose,
		"customerName":  ev.Metadata.CustomerName,
		"customerEmail": ev.Metadata.Email(),
	})
	if !sent.Success {
		l.Warnw("admin payment notification failed", "request_id", res.RequestID, "err", sent.Error)
	}
}

func formatAmount(minor int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", minor/100, minor%100, currency)
}

func derefID(id *uint64) uint64 {
	if id == nil {
		return 0
	}
	return *id
}
