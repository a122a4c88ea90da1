package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/letterpay/internal/app/service/reminder"
	"github.com/fatflowers/letterpay/internal/app/service/statistics"
	"github.com/fatflowers/letterpay/pkg/response"
)

// @Summary      List Payment Reminders (Admin)
// @Description  Retrieves a paginated and filterable list of recorded reminder attempts.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body reminder.ScanRemindersRequest true "Filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListPaymentReminders
// @Router       /api/v1/admin/list_payment_reminders [post]
func ApiListPaymentReminders(h *reminder.History) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reminder.ScanRemindersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := h.ScanReminders(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Reminder Statistics (Admin)
// @Description  Retrieves daily reminder and payment aggregates.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body statistics.ReminderStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespReminderStatistic
// @Router       /api/v1/admin/reminder_statistic [post]
func ApiGetReminderStatistic(svc *statistics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.ReminderStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetReminderStatistic(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, h *reminder.History, stats *statistics.Service) {
	r.POST("/list_payment_reminders", ApiListPaymentReminders(h))
	r.POST("/reminder_statistic", ApiGetReminderStatistic(stats))
	r.GET("/request_reminders", ApiRequestReminderList(h))
}
