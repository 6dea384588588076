package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// UserLookup loads the account behind a token.
type UserLookup interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// RequireActiveUser re-checks that the authenticated account still exists
// and is active. Tokens outlive deactivation otherwise.
func RequireActiveUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.Next()
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if errors.Is(err, service.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			logging.Ctx(c.Request.Context()).Error().Err(err).Uint("user_id", userID).Msg("failed to verify user status")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to verify user status"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User is inactive"})
			return
		}

		// staff flag comes from the database, not the token
		c.Set(ContextIsStaff, user.IsStaff)
		c.Next()
	}
}
