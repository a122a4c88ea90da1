package reminder

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/pkg/types"
)

// reminderColumns may appear in filters and sort_by.
var reminderColumns = []string{"id", "request_id", "user_id", "reminder_type", "status", "sent_at"}

type ScanRemindersRequest struct {
	Filters   types.CommonFilters `json:"filters"`
	From      int                 `json:"from"`
	Size      int                 `json:"size"`
	SortBy    string              `json:"sort_by"`
	SortOrder string              `json:"sort_order"`
}

type ScanRemindersResponse struct {
	Items []*models.PaymentReminder `json:"items"`
	Total int64                     `json:"total"`
}

// History lists recorded reminder attempts for the admin screens.
type History struct {
	db *gorm.DB
}

func NewHistory(db *gorm.DB) *History { return &History{db: db} }

func (h *History) ScanReminders(ctx context.Context, req *ScanRemindersRequest) (*ScanRemindersResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	for _, f := range req.Filters {
		if err := f.Validate(reminderColumns); err != nil {
			return nil, err
		}
	}
	if req.SortBy != "" && !lo.Contains(reminderColumns, req.SortBy) {
		return nil, fmt.Errorf("sort by %q is not allowed", req.SortBy)
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	scoped := func() *gorm.DB {
		tx := h.db.WithContext(ctx).Model(&models.PaymentReminder{})
		if len(req.Filters) > 0 {
			tx = tx.Where(clause.Where{Exprs: []clause.Expression{req.Filters}})
		}
		return tx
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reminders: %w", err)
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "sent_at"
	}
	var rows []*models.PaymentReminder
	err := scoped().Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: sortBy}, Desc: req.SortOrder != "asc"},
		{Column: clause.Column{Name: "id"}, Desc: req.SortOrder != "asc"},
	}}).Offset(req.From).Limit(req.Size).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return &ScanRemindersResponse{Items: rows, Total: total}, nil
}
