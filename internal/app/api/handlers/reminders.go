package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/letterpay/internal/app/service/reminder"
	"github.com/fatflowers/letterpay/pkg/logctx"
	"github.com/fatflowers/letterpay/pkg/response"
)

// @Summary      Run reminder tick
// @Description  Runs one reminder pass and returns the per-tier breakdown. Requires the trigger secret as a bearer token.
// @Tags         Reminders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespReminderSummary
// @Failure      401  {object}  handlers.RespOK
// @Failure      409  {object}  handlers.RespOK
// @Failure      500  {object}  handlers.RespOK
// @Router       /api/v1/reminders/run [post]
func ApiRunReminders(t reminder.Ticker, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := t.RunTick(c.Request.Context())
		if err != nil {
			if errors.Is(err, reminder.ErrTickInProgress) {
				c.JSON(http.StatusConflict, response.ErrorT(response.APIResponseCodeConflict, err.Error()))
				return
			}
			logctx.FromGin(c, log).Errorw("reminder_tick_failed", "err", err)
			c.JSON(http.StatusInternalServerError, response.ErrorT(response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(summary))
	}
}

func RegisterReminderRoutes(r gin.IRouter, t reminder.Ticker, log *zap.SugaredLogger) {
	r.POST("/run", ApiRunReminders(t, log))
}
