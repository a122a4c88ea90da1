package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/fatflowers/letterpay/internal/app"
	"github.com/fatflowers/letterpay/internal/app/service/reminder"
)

func remindCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run one reminder tick and print the summary as JSON",
		Long: `Run a single reminder pass against the configured database.

Suitable for cron: overlapping runs are rejected by the same lock the
HTTP trigger uses, and the command exits non-zero in that case.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ticker reminder.Ticker
			a := fx.New(app.Core, fx.NopLogger, fx.Populate(&ticker))

			startCtx, cancel := context.WithTimeout(cmd.Context(), app.DefaultStartTimeout)
			defer cancel()
			if err := a.Start(startCtx); err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}
			defer func() {
				stopCtx, cancelStop := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
				defer cancelStop()
				_ = a.Stop(stopCtx)
			}()

			ctx, cancelTick := context.WithTimeout(cmd.Context(), timeout)
			defer cancelTick()
			summary, err := ticker.RunTick(ctx)
			if summary != nil {
				// An aborted tick still reports what it finished.
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if eerr := enc.Encode(summary); eerr != nil && err == nil {
					err = eerr
				}
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "upper bound for the whole tick")
	return cmd
}
