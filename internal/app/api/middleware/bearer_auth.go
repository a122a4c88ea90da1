package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/letterpay/pkg/logctx"
	"github.com/fatflowers/letterpay/pkg/response"
)

// BearerAuthMiddleware requires "Authorization: Bearer <secret>". An empty
// secret rejects every request.
func BearerAuthMiddleware(secret string, base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || secret == "" || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(secret)) != 1 {
			logctx.FromGin(c, base).Warnw("unauthorized request", "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT(response.APIResponseCodeUnauthorized, ""))
			return
		}
		c.Next()
	}
}
