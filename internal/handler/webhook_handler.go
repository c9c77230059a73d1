package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"tickr/internal/auth"
	"tickr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxWebhookBody = 1 << 20

// WebhookHandler receives user lifecycle events from the identity provider.
type WebhookHandler struct {
	users    UserSyncer
	verifier *auth.WebhookVerifier
	log      logrus.FieldLogger
}

// NewWebhookHandler returns a handler that rejects every event when verifier
// is nil.
func NewWebhookHandler(users UserSyncer, verifier *auth.WebhookVerifier, log logrus.FieldLogger) *WebhookHandler {
	return &WebhookHandler{users: users, verifier: verifier, log: silentLogger(log)}
}

type webhookEvent struct {
	Type string          `json:"type"`
	Data webhookUserData `json:"data"`
}

type webhookUserData struct {
	ID                    string `json:"id"`
	PrimaryEmailAddressID string `json:"primary_email_address_id"`
	EmailAddresses        []struct {
		ID           string `json:"id"`
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	ImageURL  string  `json:"image_url"`
}

func (d webhookUserData) primaryEmail() string {
	for _, e := range d.EmailAddresses {
		if e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(d.EmailAddresses) > 0 {
		return d.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (d webhookUserData) name() string {
	var parts []string
	for _, p := range []*string{d.FirstName, d.LastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, " ")
}

// Clerk godoc
// @Summary      Identity provider webhook
// @Description  Handles user.created, user.updated and user.deleted. Signed with the Svix scheme.
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /webhooks/clerk [post]
func (h *WebhookHandler) Clerk(c *gin.Context) {
	if h.verifier == nil {
		h.log.Error("webhook secret is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if err := h.verifier.Verify(body, c.Request.Header); err != nil {
		h.log.WithError(err).Warn("webhook verification failed")
		badRequest(c, "Invalid webhook signature")
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil || event.Data.ID == "" {
		badRequest(c, "Invalid webhook payload")
		return
	}

	entry := h.log.WithFields(logrus.Fields{"event": event.Type, "user_id": event.Data.ID})
	switch event.Type {
	case "user.created", "user.updated":
		_, err = h.users.Sync(c.Request.Context(), service.Identity{
			UserID:    event.Data.ID,
			Email:     event.Data.primaryEmail(),
			Name:      event.Data.name(),
			AvatarURL: event.Data.ImageURL,
		})
	case "user.deleted":
		err = h.users.Delete(c.Request.Context(), event.Data.ID)
	default:
		entry.Debug("webhook event ignored")
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
		return
	}

	if err != nil {
		entry.WithError(err).Error("webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process webhook"})
		return
	}
	entry.Info("webhook processed")
	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed"})
}
