package logctx

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ctxKey int

const (
	loggerKey ctxKey = iota
	traceIDKey
)

// GinLoggerKey and GinTraceIDKey are the gin.Context keys set by the middleware.
const (
	GinLoggerKey  = "logger"
	GinTraceIDKey = "traceID"
)

// WithLogger stores a request-scoped logger on ctx.
func WithLogger(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithTraceID stores the request trace id on ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID returns the trace id stored on ctx, or "".
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(traceIDKey).(string)
	return s
}

// FromGin returns a request-scoped logger from gin.Context if present,
// otherwise returns the provided base logger.
func FromGin(c *gin.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if c == nil {
		return base
	}
	if l, ok := c.Get(GinLoggerKey); ok {
		if lg, ok := l.(*zap.SugaredLogger); ok && lg != nil {
			return lg
		}
	}
	return FromCtx(c.Request.Context(), base)
}

// FromCtx returns a logger from context if set, otherwise enriches base with
// the trace id when one is present.
func FromCtx(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	if ctx == nil {
		return base
	}
	if lg, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok && lg != nil {
		return lg
	}
	if tid := TraceID(ctx); tid != "" {
		return base.With("trace_id", tid)
	}
	return base
}
