// mail.go
//
// Outbound transactional email via Postmark. Send errors are returned values
// that callers must check; nothing here panics or retries.

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thruflo/awraamba/internal/config"
)

// PostmarkEndpoint is the single-message send API.
const PostmarkEndpoint = "https://api.postmarkapp.com/email"

// Message is an outbound email.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns a Postmark mailer when a server token is configured, otherwise
// a logging no-op so dev environments work without credentials.
func New(cfg *config.Config) Mailer {
	if cfg.PostmarkToken == "" {
		logrus.Warn("POSTMARK_TOKEN not set, outbound mail disabled")
		return &Noop{}
	}
	return &Postmark{
		Token:  cfg.PostmarkToken,
		From:   cfg.MailFrom,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Postmark sends via the Postmark REST API.
type Postmark struct {
	Token    string
	From     string
	Client   *http.Client
	Endpoint string
}

type postmarkPayload struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody,omitempty"`
	HTMLBody string `json:"HtmlBody,omitempty"`
}

type postmarkResponse struct {
	ErrorCode int    `json:"ErrorCode"`
	Message   string `json:"Message"`
}

// Send implements Mailer.
func (p *Postmark) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(postmarkPayload{
		From:     p.From,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
	})
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = PostmarkEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", p.Token)

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("mail send failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var result postmarkResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("mail send failed: status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK || result.ErrorCode != 0 {
		return fmt.Errorf("mail send failed: %s (code %d)", result.Message, result.ErrorCode)
	}

	logrus.WithField("to", msg.To).Info("sent mail")
	return nil
}

// Noop drops messages, logging them at debug level.
type Noop struct{}

// Send implements Mailer.
func (n *Noop) Send(ctx context.Context, msg Message) error {
	logrus.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Debug("mail dropped (no mailer configured)")
	return nil
}
