package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/letterpay/docs"
	"github.com/fatflowers/letterpay/internal/app/api/handlers"
	mw "github.com/fatflowers/letterpay/internal/app/api/middleware"
	nh "github.com/fatflowers/letterpay/internal/app/service/notification_handler"
	"github.com/fatflowers/letterpay/internal/app/service/reminder"
	"github.com/fatflowers/letterpay/internal/app/service/statistics"
	cfgpkg "github.com/fatflowers/letterpay/pkg/config"
	metrics "github.com/fatflowers/letterpay/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Request logger & access log are attached per group in registerRoutes.
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Engine       *gin.Engine
	Log          *zap.SugaredLogger
	Cfg          *cfgpkg.Config
	DB           *gorm.DB
	NotifHandler *nh.NotificationHandler
	Ticker       reminder.Ticker
	History      *reminder.History
	Stats        *statistics.Service
}

func registerRoutes(d routeDeps) {
	r, log, cfg := d.Engine, d.Log, d.Cfg
	if cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return "unmatched"
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub, d.DB)
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())

	// Gateway webhook: authenticity is the gateway's concern, never 401.
	handlers.RegisterPaymentWebhookRoutes(apiV1.Group("/payments"), d.NotifHandler, log)

	if cfg.Reminders.TriggerSecret == "" {
		log.Warnw("reminders.trigger_secret is empty, reminder trigger and admin APIs will reject every call")
	}
	auth := mw.BearerAuthMiddleware(cfg.Reminders.TriggerSecret, log)
	handlers.RegisterReminderRoutes(apiV1.Group("/reminders", auth), d.Ticker, log)
	handlers.RegisterAdminRoutes(apiV1.Group("/admin", auth), d.History, d.Stats)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
