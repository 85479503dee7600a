package mailer

import "context"

// Message готовое к отправке письмо
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Provider транспорт доставки писем
type Provider interface {
	Deliver(ctx context.Context, msg *Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
