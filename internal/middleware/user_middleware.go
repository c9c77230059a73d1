package middleware

import (
	"context"
	"net/http"

	"tickr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserEnsurer provisions the authenticated user on first sight.
type UserEnsurer interface {
	Ensure(ctx context.Context, id service.Identity) error
}

// EnsureUser makes sure the caller has a user row and a personal workspace
// before any handler runs. Must follow JWTAuthMiddleware.
func EnsureUser(users UserEnsurer, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		err := users.Ensure(c.Request.Context(), service.Identity{
			UserID:    id.UserID,
			Email:     id.Email,
			Name:      id.Name,
			AvatarURL: id.AvatarURL,
		})
		if err != nil {
			if service.KindOf(err) == service.KindUnauthenticated {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User is not provisioned"})
				return
			}
			log.WithError(err).WithField("user_id", id.UserID).Error("failed to sync user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync user"})
			return
		}
		c.Next()
	}
}
