package mailer

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/letterpay/pkg/config"
)

func NewSender(cfg *config.Config, renderer *Renderer, log *zap.SugaredLogger) Sender {
	if cfg.Notification.SMTP.Host == "" {
		log.Warnw("smtp host not configured, mail will only be logged")
		return NewLogSender(renderer, log)
	}
	return NewSMTP(cfg.Notification.SMTP, renderer)
}

// Module exposes the notification sender via Fx.
var Module = fx.Options(
	fx.Provide(NewRenderer),
	fx.Provide(NewSender),
)
