package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/fatflowers/letterpay/internal/app/api/server"
	notificationhandler "github.com/fatflowers/letterpay/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/letterpay/internal/app/service/notification_log"
	"github.com/fatflowers/letterpay/internal/app/service/pricing"
	"github.com/fatflowers/letterpay/internal/app/service/reconciliation"
	"github.com/fatflowers/letterpay/internal/app/service/reminder"
	"github.com/fatflowers/letterpay/internal/app/service/statistics"
	"github.com/fatflowers/letterpay/internal/platform/db"
	"github.com/fatflowers/letterpay/internal/platform/lock"
	"github.com/fatflowers/letterpay/internal/platform/mailer"
	"github.com/fatflowers/letterpay/pkg/config"
	"github.com/fatflowers/letterpay/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

// Core wires storage, mail and the domain services without any listener.
// The CLI reuses it to run a single reminder tick.
var Core = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	lock.Module,
	mailer.Module,
	pricing.Module,
	notificationlog.Module,
	reconciliation.Module,
	notificationhandler.Module,
	reminder.Module,
	statistics.Module,
)

// Module is the full API process: Core plus HTTP server and the optional
// in-process reminder scheduler.
var Module = fx.Options(
	Core,
	reminder.SchedulerModule,
	server.Module,
)
