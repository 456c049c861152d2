package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/awraamba/internal/config"
)

func TestNew(t *testing.T) {
	mailer := New(&config.Config{})
	_, ok := mailer.(*Noop)
	assert.True(t, ok, "no token should yield the no-op mailer")

	mailer = New(&config.Config{PostmarkToken: "token", MailFrom: "noreply@example.com"})
	_, ok = mailer.(*Postmark)
	assert.True(t, ok, "a token should yield the Postmark mailer")
}

func TestPostmarkSend(t *testing.T) {
	var received postmarkPayload
	var token string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = r.Header.Get("X-Postmark-Server-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(postmarkResponse{ErrorCode: 0, Message: "OK"})
	}))
	defer server.Close()

	mailer := &Postmark{
		Token:    "server-token",
		From:     "noreply@example.com",
		Endpoint: server.URL,
	}

	err := mailer.Send(context.Background(), Message{
		To:       "thruflo@example.com",
		Subject:  "Confirm your account",
		TextBody: "Hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "server-token", token)
	assert.Equal(t, "noreply@example.com", received.From)
	assert.Equal(t, "thruflo@example.com", received.To)
	assert.Equal(t, "Confirm your account", received.Subject)
	assert.Equal(t, "Hello", received.TextBody)
}

func TestPostmarkSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(postmarkResponse{ErrorCode: 300, Message: "Invalid email request"})
	}))
	defer server.Close()

	mailer := &Postmark{Token: "server-token", Endpoint: server.URL}

	err := mailer.Send(context.Background(), Message{To: "x@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email request")
}

func TestPostmarkSendUnreachable(t *testing.T) {
	mailer := &Postmark{Token: "server-token", Endpoint: "http://127.0.0.1:1"}

	err := mailer.Send(context.Background(), Message{To: "x@example.com"})
	assert.Error(t, err)
}

func TestNoopSend(t *testing.T) {
	mailer := &Noop{}
	assert.NoError(t, mailer.Send(context.Background(), Message{To: "x@example.com"}))
}
