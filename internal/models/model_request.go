package models

import (
	"time"

	"github.com/fatflowers/letterpay/pkg/types"
	"gorm.io/datatypes"
)

// Request is a letter-writing order.
type Request struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Purpose   string `gorm:"column:purpose;type:text;not null" json:"purpose"`
	Recipient string `gorm:"column:recipient;type:varchar(255)" json:"recipient"`
	// Price is in minor currency units.
	Price  int64               `gorm:"column:price;type:bigint;not null" json:"price"`
	Status types.RequestStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	UserID *uint64             `gorm:"column:user_id;index" json:"user_id"`
	// Payload keeps the free-form order details the gateway metadata carried at creation.
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Request) TableName() string {
	return "requests"
}
