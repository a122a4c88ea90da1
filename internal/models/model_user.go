package models

import "time"

// User is the customer a letter request belongs to. Created by reconciliation
// on first payment when no user with the email exists.
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Phone     string    `gorm:"column:phone;type:varchar(64)" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
