package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Provider kinds
const (
	ProviderSMTP    = "smtp"
	ProviderWebhook = "webhook"
	ProviderLog     = "log"
)

// ProviderConfig параметры выбора транспорта
type ProviderConfig struct {
	Kind string
	From string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	WebhookURL   string
	WebhookToken string
	Timeout      time.Duration
}

// NewProvider выбирает транспорт. Неполная конфигурация даёт логирующий транспорт.
func NewProvider(cfg ProviderConfig, logger Logger) Provider {
	switch cfg.Kind {
	case ProviderSMTP:
		if cfg.SMTPHost == "" {
			return &LogProvider{logger: logger}
		}
		return &SMTPProvider{
			addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
			host: cfg.SMTPHost,
			from: cfg.From,
			auth: smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost),
		}
	case ProviderWebhook:
		if cfg.WebhookURL == "" {
			return &LogProvider{logger: logger}
		}
		return NewWebhookProvider(cfg.WebhookURL, cfg.WebhookToken, cfg.From, cfg.Timeout)
	default:
		return &LogProvider{logger: logger}
	}
}

// LogProvider пишет письма в лог вместо отправки
type LogProvider struct {
	logger Logger
}

func (p *LogProvider) Deliver(_ context.Context, msg *Message) error {
	p.logger.Info("Mailer: [log provider] to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

// SMTPProvider отправка через SMTP-сервер
type SMTPProvider struct {
	addr string
	host string
	from string
	auth smtp.Auth
}

func (p *SMTPProvider) Deliver(_ context.Context, msg *Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", p.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.HTML)

	if err := smtp.SendMail(p.addr, p.auth, p.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("%w: smtp %s: %v", ErrDelivery, p.host, err)
	}
	return nil
}
