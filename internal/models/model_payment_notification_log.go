package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentNotificationLogStatus string

const (
	PaymentNotificationLogStatusReceived     PaymentNotificationLogStatus = "received"
	PaymentNotificationLogStatusHandled      PaymentNotificationLogStatus = "handled"
	PaymentNotificationLogStatusIgnored      PaymentNotificationLogStatus = "ignored"
	PaymentNotificationLogStatusHandleFailed PaymentNotificationLogStatus = "handle_failed"
)

// PaymentNotificationLog is the raw audit trail of gateway webhook deliveries,
// one row per delivery stage. Used for troubleshooting replays.
type PaymentNotificationLog struct {
	ID            string                       `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Gateway       string                       `gorm:"column:gateway;type:varchar(64);not null" json:"gateway"`
	TraceID       string                       `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	TransactionID string                       `gorm:"column:transaction_id;type:varchar(128);index" json:"transaction_id"`
	GatewayStatus string                       `gorm:"column:gateway_status;type:varchar(64)" json:"gateway_status"`
	Data          datatypes.JSON               `gorm:"column:data;type:jsonb" json:"data"`
	Result        *datatypes.JSON              `gorm:"column:result;type:jsonb" json:"result"`
	Status        PaymentNotificationLogStatus `gorm:"column:status;type:varchar(64);not null" json:"status"`
	CreatedAt     time.Time                    `json:"created_at"`
}

func (PaymentNotificationLog) TableName() string { return "payment_notification_log" }
