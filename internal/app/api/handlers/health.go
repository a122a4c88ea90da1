package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fatflowers/letterpay/pkg/response"
)

const healthPingTimeout = 2 * time.Second

// @Summary      Health check
// @Description  Reports whether the ledger database answers a ping
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /healthz [get]
func ApiHealthz(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		sqlDB, err := gdb.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, response.APIResponse[map[string]string]{
				Success: false,
				Code:    response.APIResponseCodeError,
				Message: err.Error(),
				Data:    map[string]string{"status": "unavailable", "database": "down"},
			})
			return
		}
		c.JSON(http.StatusOK, response.OKT(map[string]string{"status": "ok", "database": "up"}))
	}
}

func RegisterHealthRoutes(r gin.IRouter, gdb *gorm.DB) {
	r.GET("/healthz", ApiHealthz(gdb))
}
