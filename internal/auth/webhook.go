package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	svix "github.com/svix/svix-webhooks/go"
)

// Svix signs identity-provider webhooks; these are its header names.
const (
	HeaderWebhookID        = "svix-id"
	HeaderWebhookTimestamp = "svix-timestamp"
	HeaderWebhookSignature = "svix-signature"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidSecret    = errors.New("invalid webhook secret")
)

// WebhookVerifier checks Svix signatures (v1, HMAC-SHA256 over
// id.timestamp.body, five minute timestamp tolerance).
type WebhookVerifier struct {
	wh *svix.Webhook
}

// NewWebhookVerifier accepts the provider's "whsec_..." signing secret.
func NewWebhookVerifier(secret string) (*WebhookVerifier, error) {
	if strings.TrimSpace(strings.TrimPrefix(secret, "whsec_")) == "" {
		return nil, ErrInvalidSecret
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return &WebhookVerifier{wh: wh}, nil
}

// Verify fails with ErrInvalidSignature on missing headers, a stale
// timestamp or a signature mismatch.
func (v *WebhookVerifier) Verify(body []byte, header http.Header) error {
	if err := v.wh.Verify(body, header); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}

// Sign returns the signature header value ("v1,<base64>") for a payload.
func (v *WebhookVerifier) Sign(id string, at time.Time, body []byte) (string, error) {
	return v.wh.Sign(id, at, body)
}
