package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/letterpay/internal/platform/db"
	"github.com/fatflowers/letterpay/pkg/config"
	"github.com/fatflowers/letterpay/pkg/logger"
)

func migrateCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed reminder settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				gdb *gorm.DB
				log *zap.SugaredLogger
			)
			a := fx.New(
				logger.Module,
				config.Module,
				fx.Provide(db.NewDB),
				fx.NopLogger,
				fx.Populate(&cfg, &gdb, &log),
			)
			if err := a.Err(); err != nil {
				return fmt.Errorf("failed to build: %w", err)
			}
			defer func() {
				if sqlDB, err := gdb.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}()

			if err := db.Migrate(gdb); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Infow("tables migrated")
			if !seed {
				return nil
			}
			settings, err := db.SeedReminderSettings(cmd.Context(), gdb, cfg.Reminders.Defaults)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"reminder settings: first=%dh second=%dh final=%dh active=%t max/day=%d\n",
				settings.FirstReminderHours, settings.SecondReminderHours, settings.FinalReminderHours,
				settings.IsActive, settings.MaxRemindersPerDay)
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", true, "insert default reminder settings when none exist")
	return cmd
}
