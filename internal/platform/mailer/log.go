package mailer

import (
	"context"

	"go.uber.org/zap"

	"github.com/fatflowers/letterpay/pkg/logctx"
)

// LogSender renders mail and writes it to the log instead of delivering it.
// Used when no SMTP host is configured.
type LogSender struct {
	renderer *Renderer
	log      *zap.SugaredLogger
}

func NewLogSender(renderer *Renderer, log *zap.SugaredLogger) *LogSender {
	return &LogSender{renderer: renderer, log: log}
}

func (s *LogSender) Send(ctx context.Context, to string, templateID string, args map[string]any) SendResult {
	subject, _, err := s.renderer.Render(templateID, args)
	if err != nil {
		return Failed(err)
	}
	if err := ctx.Err(); err != nil {
		return Failed(err)
	}
	logctx.FromCtx(ctx, s.log).Infow("mail_logged", "to", to, "template", templateID, "subject", subject)
	return SendResult{Success: true}
}
