package mailer

import "errors"

var (
	// ErrUnknownTemplate возвращается для неизвестного вида письма
	ErrUnknownTemplate = errors.New("mailer: unknown template")

	// ErrRender возвращается при ошибке рендеринга шаблона
	ErrRender = errors.New("mailer: failed to render template")

	// ErrDelivery возвращается при ошибке отправки письма провайдером
	ErrDelivery = errors.New("mailer: delivery failed")

	// ErrInvalidResponse возвращается при неожиданном ответе почтового шлюза
	ErrInvalidResponse = errors.New("mailer: invalid response from relay")
)
