package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/fatflowers/letterpay/pkg/config"
)

// SMTPSender delivers mail over SMTP. Every call is bounded by ctx: the dial
// honours cancellation and the connection deadline is set from ctx.
type SMTPSender struct {
	cfg      config.SMTPConfig
	renderer *Renderer
}

func NewSMTP(cfg config.SMTPConfig, renderer *Renderer) *SMTPSender {
	return &SMTPSender{cfg: cfg, renderer: renderer}
}

func (s *SMTPSender) Send(ctx context.Context, to string, templateID string, args map[string]any) SendResult {
	if strings.TrimSpace(to) == "" {
		return SendResult{Error: "recipient is empty"}
	}
	subject, body, err := s.renderer.Render(templateID, args)
	if err != nil {
		return Failed(err)
	}
	if err := s.deliver(ctx, to, subject, body); err != nil {
		return Failed(err)
	}
	return SendResult{Success: true}
}

func (s *SMTPSender) deliver(ctx context.Context, to, subject, body string) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if s.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMessage(s.cfg.From, to, subject, body)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return c.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
