package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/letterpay/internal/app/service/reminder"
	"github.com/fatflowers/letterpay/pkg/response"
	"github.com/fatflowers/letterpay/pkg/types"
)

// @Summary      Reminder history of one request (Admin)
// @Description  Lists the reminder attempts recorded for a request, newest first by default.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        request_id  query  int     true   "Request id"
// @Param        from        query  int     false  "Offset"
// @Param        size        query  int     false  "Page size"
// @Param        sort_order  query  string  false  "asc or desc"
// @Success      200  {object}  handlers.RespListPaymentReminders
// @Router       /api/v1/admin/request_reminders [get]
func ApiRequestReminderList(h *reminder.History) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.ParseUint(c.Query("request_id"), 10, 64)
		if err != nil || requestID == 0 {
			c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeBadRequest, "missing or invalid request_id"))
			return
		}
		from := 0
		if v := c.Query("from"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				from = n
			}
		}
		size := 100
		if v := c.Query("size"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				size = n
			} else {
				c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeBadRequest, "invalid size"))
				return
			}
		}
		sortOrder := c.Query("sort_order")
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		res, err := h.ScanReminders(c.Request.Context(), &reminder.ScanRemindersRequest{
			Filters:   types.CommonFilters{{Field: "request_id", Operator: types.CommonFilterOperatorEq, Values: []any{requestID}}},
			From:      from,
			Size:      size,
			SortBy:    "sent_at",
			SortOrder: sortOrder,
		})
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}
