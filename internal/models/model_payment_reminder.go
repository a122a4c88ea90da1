package models

import (
	"time"

	"github.com/fatflowers/letterpay/pkg/types"
)

// PaymentReminder is an append-only record of one reminder attempt.
// (request_id, reminder_type) is unique: one attempt per tier per request.
type PaymentReminder struct {
	ID           string               `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RequestID    uint64               `gorm:"column:request_id;not null;uniqueIndex:ux_payment_reminder_request_type,priority:1" json:"request_id"`
	UserID       uint64               `gorm:"column:user_id;not null;index" json:"user_id"`
	ReminderType types.ReminderType   `gorm:"column:reminder_type;type:varchar(32);not null;uniqueIndex:ux_payment_reminder_request_type,priority:2" json:"reminder_type"`
	Status       types.ReminderStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Note         string               `gorm:"column:note;type:text" json:"note"`
	SentAt       time.Time            `gorm:"column:sent_at;not null;index" json:"sent_at"`
}

func (PaymentReminder) TableName() string {
	return "payment_reminders"
}
