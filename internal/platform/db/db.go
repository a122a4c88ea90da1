package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fatflowers/letterpay/internal/models"
	cfgpkg "github.com/fatflowers/letterpay/pkg/config"
	gormzap "github.com/fatflowers/letterpay/pkg/gormlog"
)

func dialector(cfg cfgpkg.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case cfgpkg.DBDriverPostgres, "":
		return postgres.Open(cfg.DSN), nil
	case cfgpkg.DBDriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}
	d, err := dialector(cfg.Database)
	if err != nil {
		return nil, err
	}
	level := gormlogger.Warn
	if cfg.Env == cfgpkg.EnvDev {
		level = gormlogger.Info
	}
	db, err := gorm.Open(d, &gorm.Config{Logger: gormzap.New(l, level), NowFunc: NowUTC})
	if err != nil {
		l.Errorf("failed to connect database: %v", err)
		return nil, err
	}
	if cfg.Database.Driver == cfgpkg.DBDriverSQLite {
		// SQLite allows one writer; serialize through a single connection.
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	l.Infow("connected to database", "driver", cfg.Database.Driver)
	return db, nil
}

// NowUTC stamps autoCreateTime/autoUpdateTime columns. SQLite compares
// timestamps as text, so every writer must use the same zone.
func NowUTC() time.Time { return time.Now().UTC() }

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Request{},
		&models.Payment{},
		&models.PaymentReminder{},
		&models.ReminderSettings{},
		&models.PaymentNotificationLog{},
	)
}

// SeedReminderSettings inserts the singleton settings row when none exists.
// An existing row is left untouched: it belongs to the admin screens.
func SeedReminderSettings(ctx context.Context, db *gorm.DB, d cfgpkg.ReminderDefaults) (*models.ReminderSettings, error) {
	var settings models.ReminderSettings
	err := db.WithContext(ctx).Order("id").First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load reminder settings: %w", err)
	}
	settings = models.ReminderSettings{
		ID:                  1,
		FirstReminderHours:  d.FirstReminderHours,
		SecondReminderHours: d.SecondReminderHours,
		FinalReminderHours:  d.FinalReminderHours,
		IsActive:            d.IsActive,
		MaxRemindersPerDay:  d.MaxRemindersPerDay,
	}
	if err := db.WithContext(ctx).FirstOrCreate(&settings, models.ReminderSettings{ID: 1}).Error; err != nil {
		return nil, fmt.Errorf("failed to seed reminder settings: %w", err)
	}
	return &settings, nil
}

// AutoMigrate runs GORM migrations on startup
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB, cfg *cfgpkg.Config) error {
	if err := Migrate(db); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	if _, err := SeedReminderSettings(context.Background(), db, cfg.Reminders.Defaults); err != nil {
		l.Errorf("reminder settings seed failed: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing database connection pool")
			return sqlDB.Close()
		},
	})
}
