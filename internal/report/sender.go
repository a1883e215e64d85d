package report

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/john-holland/heycern-m87hey/internal/platform/config"
)

// Sender delivers a rendered report to its recipients.
type Sender interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// SMTPSender hands reports to an SMTP relay.
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender builds a sender for the relay at host:port.
func NewSMTPSender(host string, port int, from string) *SMTPSender {
	return &SMTPSender{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		from: from,
	}
}

// Send mails body as a plain-text message. smtp.SendMail dials per call, so
// ctx only gates entry.
func (s *SMTPSender) Send(ctx context.Context, recipients []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	msg := formatMessage(s.from, recipients, subject, body)
	if err := smtp.SendMail(s.addr, nil, s.from, recipients, msg); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}

func formatMessage(from string, recipients []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// LogSender records deliveries in the log instead of mailing them. It backs
// development environments with no relay configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs the logging sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the delivery metadata. The body itself stays out of the log.
func (s *LogSender) Send(ctx context.Context, recipients []string, subject, body string) error {
	s.logger.InfoContext(ctx, "report delivery logged, no smtp host configured",
		"recipients", strings.Join(recipients, ", "),
		"subject", subject,
		"bytes", len(body),
	)
	return nil
}

// NewSenderFromConfig picks the SMTP relay when a host is configured and the
// logging sender otherwise.
func NewSenderFromConfig(cfg config.SMTPConfig, logger *slog.Logger) Sender {
	if cfg.Host == "" {
		return NewLogSender(logger)
	}
	return NewSMTPSender(cfg.Host, cfg.Port, cfg.From)
}
