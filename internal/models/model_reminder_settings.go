package models

import (
	"time"

	"github.com/fatflowers/letterpay/pkg/types"
)

// ReminderSettings is a singleton row maintained by the admin screens.
type ReminderSettings struct {
	ID                  uint      `gorm:"column:id;primaryKey" json:"id"`
	FirstReminderHours  int       `gorm:"column:first_reminder_hours;not null" json:"first_reminder_hours"`
	SecondReminderHours int       `gorm:"column:second_reminder_hours;not null" json:"second_reminder_hours"`
	FinalReminderHours  int       `gorm:"column:final_reminder_hours;not null" json:"final_reminder_hours"`
	IsActive            bool      `gorm:"column:is_active;not null" json:"is_active"`
	MaxRemindersPerDay  int       `gorm:"column:max_reminders_per_day;not null" json:"max_reminders_per_day"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (ReminderSettings) TableName() string {
	return "reminder_settings"
}

// ThresholdFor returns the age a request must exceed before the tier is due.
func (s *ReminderSettings) ThresholdFor(tier types.ReminderType) time.Duration {
	var hours int
	switch tier {
	case types.ReminderTypeFirst:
		hours = s.FirstReminderHours
	case types.ReminderTypeSecond:
		hours = s.SecondReminderHours
	case types.ReminderTypeFinal:
		hours = s.FinalReminderHours
	}
	return time.Duration(hours) * time.Hour
}
