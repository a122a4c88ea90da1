package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	nh "github.com/fatflowers/letterpay/internal/app/service/notification_handler"
	"github.com/fatflowers/letterpay/internal/app/service/reconciliation"
	"github.com/fatflowers/letterpay/pkg/logctx"
	"github.com/fatflowers/letterpay/pkg/response"
)

const maxWebhookBody = 1 << 20

// WebhookHandler processes one raw gateway delivery.
type WebhookHandler interface {
	HandleNotification(ctx context.Context, body []byte) (*reconciliation.Result, error)
}

// @Summary      Payment gateway webhook
// @Description  Applies a gateway payment event. Recognized, unknown and malformed events return 200; storage failures return 500 so the gateway retries.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body handlers.WebhookPayload true "Gateway event"
// @Success      200  {object}  handlers.RespWebhook
// @Failure      500  {object}  handlers.RespOK
// @Router       /api/v1/payments/webhook [post]
func ApiPaymentWebhook(h WebhookHandler, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := logctx.FromGin(c, log)
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
		if err != nil {
			l.Warnw("webhook_body_unreadable", "err", err)
			c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeBadRequest, "unreadable body"))
			return
		}

		res, err := h.HandleNotification(c.Request.Context(), body)
		if err != nil {
			if nh.IsMalformed(err) {
				c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			l.Errorw("webhook_handle_error", "err", err)
			c.JSON(http.StatusInternalServerError, response.ErrorT(response.APIResponseCodeError, "processing failed"))
			return
		}
		c.JSON(http.StatusOK, &response.APIResponse[*reconciliation.Result]{
			Success: true,
			Code:    response.APIResponseCodeOK,
			Message: string(res.Action),
			Data:    res,
		})
	}
}

func RegisterPaymentWebhookRoutes(r gin.IRouter, h WebhookHandler, log *zap.SugaredLogger) {
	r.POST("/webhook", ApiPaymentWebhook(h, log))
}
