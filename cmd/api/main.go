package main

// @title           Letterpay Backend API
// @version         1.0
// @description     Payment reconciliation and reminder escalation for letter-writing orders.

// @host      localhost:8888
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/letterpay/internal/app"
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	a := fx.New(app.Module)
	startCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		// Logging might not be ready; fallback to zap example
		zap.NewExample().Sugar().Errorf("failed to start app: %v", err)
		exitCode = 1
		return
	}

	// Block until SIGINT/SIGTERM
	<-a.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancelStop()
	if err := a.Stop(stopCtx); err != nil {
		zap.NewExample().Sugar().Errorf("failed to stop app: %v", err)
		exitCode = 1
	}
}
