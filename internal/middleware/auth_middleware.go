package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/pkg/apperrors"
	"github.com/yigit/athena/internal/pkg/auth"
)

const principalKey = "principal"

// AuthMiddleware resolves API keys to users and checks their roles
type AuthMiddleware struct {
	users repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(users repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
	}
}

// APIKeyAuth requires an "Authorization: ApiKey <id>.<secret>" header
// naming a known user with a matching secret.
func (m *AuthMiddleware) APIKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrUnauthorized, "Authentication required"))
			return
		}

		key, err := auth.ParseAuthorization(header)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		user, err := m.users.Get(c.Request.Context(), key.UserID)
		if err != nil {
			HandleAPIError(c, err)
			return
		}
		if user == nil || !auth.CheckSecret(user.APIKeyHash, key.Secret) {
			HandleAPIError(c, fmt.Errorf("unknown user or secret: %w", apperrors.ErrInvalidAPIKey))
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// RoleRequired lets the request through only when the principal holds role.
// It must run after APIKeyAuth.
func (m *AuthMiddleware) RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrUnauthorized, "Authentication required"))
			return
		}

		in, err := m.users.IsInRole(c.Request.Context(), user, role)
		if err != nil {
			HandleAPIError(c, err)
			return
		}
		if !in {
			HandleAPIError(c, apperrors.NewForbiddenError(fmt.Sprintf("Requires the %s role", role)))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the principal set by APIKeyAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
