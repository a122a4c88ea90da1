package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fatflowers/letterpay/pkg/config"
)

// New builds the process logger: JSON in prod, console output otherwise.
func New(cfg *config.Config) (*zap.SugaredLogger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg != nil && cfg.Env != config.EnvProd {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.TimeKey = "time"
	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().Named("letterpay"), nil
}

var Module = fx.Options(
	fx.Provide(New),
)
