package models

import (
	"time"

	"github.com/fatflowers/letterpay/pkg/types"
)

// Payment is one gateway charge against a Request. TransactionID is the
// gateway idempotency key; at most one row exists per key.
type Payment struct {
	ID            string              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RequestID     uint64              `gorm:"column:request_id;not null;index:idx_payment_request_status,priority:1" json:"request_id"`
	Amount        int64               `gorm:"column:amount;type:bigint;not null" json:"amount"`
	PaymentMethod string              `gorm:"column:payment_method;type:varchar(64)" json:"payment_method"`
	Status        types.PaymentStatus `gorm:"column:status;type:varchar(32);not null;index:idx_payment_request_status,priority:2" json:"status"`
	TransactionID string              `gorm:"column:transaction_id;type:varchar(128);not null;uniqueIndex" json:"transaction_id"`
	PaymentDate   time.Time           `gorm:"column:payment_date" json:"payment_date"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
