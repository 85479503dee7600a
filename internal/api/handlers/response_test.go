package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		PartySize int `json:"partySize"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"partySize": 4}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, 4, dst.PartySize)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"partySize": 4, "extra": true}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondConflict(w, "столы заняты")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"столы заняты"}`, w.Body.String())
}
