package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TableReservationService/internal/domain"
	"github.com/m04kA/TableReservationService/pkg/logger"
)

type recordingProvider struct {
	sent []*Message
	err  error
}

func (p *recordingProvider) Deliver(_ context.Context, msg *Message) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, msg)
	return nil
}

func sampleData() map[string]interface{} {
	return map[string]interface{}{
		"ReservationID": "3f1c",
		"CustomerName":  "Ada <Lovelace>",
		"PartySize":     6,
		"Date":          "2026-10-23",
		"Time":          "19:00",
		"TableIDs":      []int64{10, 12},
	}
}

func TestNotifier_RendersEveryKind(t *testing.T) {
	n, err := NewNotifier(&recordingProvider{}, "Casa", logger.NewNop())
	require.NoError(t, err)

	kinds := []domain.NotificationKind{
		domain.NotifyReservationConfirmation,
		domain.NotifyDepositRequired,
		domain.NotifyDepositConfirmation,
		domain.NotifyReviewRequest,
		domain.NotifyReservationReminder,
		domain.NotifyTableUpdate,
	}
	for _, kind := range kinds {
		msg, err := n.Render("ada@example.com", kind, sampleData())
		require.NoError(t, err, kind)
		assert.NotEmpty(t, msg.Subject, kind)
		assert.Contains(t, msg.HTML, "Casa", kind)
		assert.Contains(t, msg.HTML, "Ada &lt;Lovelace&gt;", kind)
	}
}

func TestNotifier_TableUpdateListsTables(t *testing.T) {
	n, err := NewNotifier(&recordingProvider{}, "Casa", logger.NewNop())
	require.NoError(t, err)

	msg, err := n.Render("ada@example.com", domain.NotifyTableUpdate, sampleData())
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "10, 12")
}

func TestNotifier_UnknownKind(t *testing.T) {
	n, err := NewNotifier(&recordingProvider{}, "Casa", logger.NewNop())
	require.NoError(t, err)

	_, err = n.Render("ada@example.com", domain.NotificationKind("birthday"), sampleData())
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestNotifier_SendSwallowsFailures(t *testing.T) {
	provider := &recordingProvider{err: errors.New("relay down")}
	n, err := NewNotifier(provider, "Casa", logger.NewNop())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		n.Send(context.Background(), "ada@example.com", domain.NotifyReviewRequest, sampleData())
		n.Send(context.Background(), "ada@example.com", domain.NotificationKind("birthday"), sampleData())
	})
	assert.Empty(t, provider.sent)
}

func TestNotifier_SendDelivers(t *testing.T) {
	provider := &recordingProvider{}
	n, err := NewNotifier(provider, "Casa", logger.NewNop())
	require.NoError(t, err)

	n.Send(context.Background(), "ada@example.com", domain.NotifyReservationReminder, sampleData())

	require.Len(t, provider.sent, 1)
	assert.Equal(t, "ada@example.com", provider.sent[0].To)
}

func TestWebhookProvider_Deliver(t *testing.T) {
	var got relayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewWebhookProvider(srv.URL, "secret", "hello@casa.test", time.Second)
	err := p.Deliver(context.Background(), &Message{To: "ada@example.com", Subject: "Hi", HTML: "<p>x</p>"})

	require.NoError(t, err)
	assert.Equal(t, "hello@casa.test", got.From)
	assert.Equal(t, "ada@example.com", got.To)
}

func TestWebhookProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewWebhookProvider(srv.URL, "", "hello@casa.test", time.Second)
	err := p.Deliver(context.Background(), &Message{To: "ada@example.com"})

	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestNewProvider_FallsBackToLog(t *testing.T) {
	log := logger.NewNop()

	assert.IsType(t, &LogProvider{}, NewProvider(ProviderConfig{Kind: ProviderSMTP}, log))
	assert.IsType(t, &LogProvider{}, NewProvider(ProviderConfig{Kind: ProviderWebhook}, log))
	assert.IsType(t, &SMTPProvider{}, NewProvider(ProviderConfig{Kind: ProviderSMTP, SMTPHost: "mail", SMTPPort: 25}, log))
	assert.IsType(t, &WebhookProvider{}, NewProvider(ProviderConfig{Kind: ProviderWebhook, WebhookURL: "http://relay"}, log))
}
