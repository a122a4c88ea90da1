// Package lifecycle holds the Request status rules shared by webhook
// reconciliation and the reminder engine.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/pkg/types"
)

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidTransition = errors.New("invalid request status transition")
)

// allowedSources lists, per target status, the statuses a Request may move from.
var allowedSources = map[types.RequestStatus][]types.RequestStatus{
	types.RequestStatusInProgress: {types.RequestStatusPending},
	types.RequestStatusCompleted:  {types.RequestStatusPending, types.RequestStatusInProgress},
	types.RequestStatusCancelled:  {types.RequestStatusPending, types.RequestStatusInProgress},
}

func CanTransition(from, to types.RequestStatus) bool {
	return lo.Contains(allowedSources[to], from)
}

// Transition moves a Request to status `to` with a compare-and-set update, so
// concurrent callers cannot both apply it. Re-applying the current status is a
// no-op. tx should be the caller's transaction when the move is part of a
// larger unit.
func Transition(ctx context.Context, tx *gorm.DB, requestID uint64, to types.RequestStatus) (changed bool, err error) {
	sources, ok := allowedSources[to]
	if !ok {
		return false, fmt.Errorf("%w: no transition into %s", ErrInvalidTransition, to)
	}
	res := tx.WithContext(ctx).Model(&models.Request{}).
		Where("id = ? AND status IN ?", requestID, sources).
		Update("status", to)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update request status: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var current models.Request
	if err := tx.WithContext(ctx).Select("id", "status").First(&current, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrRequestNotFound
		}
		return false, fmt.Errorf("failed to load request: %w", err)
	}
	if current.Status == to {
		return false, nil
	}
	return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
}

// Unpaid is a GORM scope keeping only requests with no COMPLETED payment.
// The query must select from the requests table.
func Unpaid(db *gorm.DB) *gorm.DB {
	return db.Where(
		"NOT EXISTS (SELECT 1 FROM payments WHERE payments.request_id = requests.id AND payments.status = ?)",
		types.PaymentStatusCompleted,
	)
}

// IsUnpaid reports whether the request has no COMPLETED payment.
func IsUnpaid(ctx context.Context, db *gorm.DB, requestID uint64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.Payment{}).
		Where("request_id = ? AND status = ?", requestID, types.PaymentStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count completed payments: %w", err)
	}
	return count == 0, nil
}
