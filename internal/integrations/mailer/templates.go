package mailer

import (
	"html/template"

	"github.com/m04kA/TableReservationService/internal/domain"
)

const layout = `{{define "layout"}}<!DOCTYPE html>
<html><body style="font-family:Georgia,serif;color:#222">
<h2>{{.Restaurant}}</h2>
{{template "content" .}}
<p style="color:#888;font-size:12px">Reservation {{.ReservationID}}</p>
</body></html>{{end}}`

type emailTemplate struct {
	subject string
	body    string
}

var templateSources = map[domain.NotificationKind]emailTemplate{
	domain.NotifyReservationConfirmation: {
		subject: "Your reservation is confirmed",
		body: `<p>Hi {{.CustomerName}},</p>
<p>Your table for {{.PartySize}} on {{.Date}} at {{.Time}} is confirmed.</p>`,
	},
	domain.NotifyDepositRequired: {
		subject: "Deposit required to hold your reservation",
		body: `<p>Hi {{.CustomerName}},</p>
<p>Parties of {{.PartySize}} require a deposit. Please complete payment within 30 minutes to keep your table on {{.Date}} at {{.Time}}.</p>`,
	},
	domain.NotifyDepositConfirmation: {
		subject: "Deposit received",
		body: `<p>Hi {{.CustomerName}},</p>
<p>We received your deposit. Your table for {{.PartySize}} on {{.Date}} at {{.Time}} is confirmed.</p>`,
	},
	domain.NotifyReviewRequest: {
		subject: "How was your visit?",
		body: `<p>Hi {{.CustomerName}},</p>
<p>Thank you for dining with us. We would love to hear about your experience.</p>`,
	},
	domain.NotifyReservationReminder: {
		subject: "Reminder: your reservation tomorrow",
		body: `<p>Hi {{.CustomerName}},</p>
<p>See you tomorrow, {{.Date}} at {{.Time}}, party of {{.PartySize}}.</p>`,
	},
	domain.NotifyTableUpdate: {
		subject: "Your table has changed",
		body: `<p>Hi {{.CustomerName}},</p>
<p>We moved your party to table(s) {{range $i, $id := .TableIDs}}{{if $i}}, {{end}}{{$id}}{{end}} for {{.Date}} at {{.Time}}.</p>`,
	},
}

// compileTemplates собирает по одному шаблону на вид письма
func compileTemplates() (map[domain.NotificationKind]*template.Template, error) {
	compiled := make(map[domain.NotificationKind]*template.Template, len(templateSources))
	for kind, src := range templateSources {
		t, err := template.New(string(kind)).Parse(layout)
		if err != nil {
			return nil, err
		}
		if _, err := t.New("content").Parse(src.body); err != nil {
			return nil, err
		}
		compiled[kind] = t
	}
	return compiled, nil
}
