package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/m04kA/TableReservationService/internal/domain"
)

// Notifier рендерит и отправляет письма. Ошибки никогда не возвращаются вызывающему коду.
type Notifier struct {
	provider   Provider
	templates  map[domain.NotificationKind]*template.Template
	restaurant string
	logger     Logger
}

// NewNotifier компилирует шаблоны; ошибка означает дефект в исходниках шаблонов
func NewNotifier(provider Provider, restaurant string, logger Logger) (*Notifier, error) {
	templates, err := compileTemplates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return &Notifier{
		provider:   provider,
		templates:  templates,
		restaurant: restaurant,
		logger:     logger,
	}, nil
}

// Send отправляет письмо вида kind. Сбой только логируется.
func (n *Notifier) Send(ctx context.Context, to string, kind domain.NotificationKind, data map[string]interface{}) {
	msg, err := n.Render(to, kind, data)
	if err != nil {
		n.logger.Error("Mailer: failed to render %s for %s: %v", kind, to, err)
		return
	}

	if err := n.provider.Deliver(ctx, msg); err != nil {
		n.logger.Error("Mailer: failed to send %s to %s: %v", kind, to, err)
		return
	}

	n.logger.Info("Mailer: sent %s to %s", kind, to)
}

// Render собирает письмо без отправки
func (n *Notifier) Render(to string, kind domain.NotificationKind, data map[string]interface{}) (*Message, error) {
	t, ok := n.templates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, kind)
	}

	payload := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["Restaurant"] = n.restaurant

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, kind, err)
	}

	return &Message{
		To:      to,
		Subject: templateSources[kind].subject,
		HTML:    buf.String(),
	}, nil
}
