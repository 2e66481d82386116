package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hmlee/threadline-backend/config"
	"github.com/hmlee/threadline-backend/internal/errors"
	"github.com/hmlee/threadline-backend/pkg/logger"
	"github.com/hmlee/threadline-backend/pkg/util"
)

// Context keys set by Authenticate
const (
	ContextUserIDKey    = "user_id"
	ContextUserEmailKey = "user_email"
	ContextUserRoleKey  = "user_role"
	ContextTokenKey     = "token"
)

// RevocationChecker reports whether a token ID was revoked by logout.
// Satisfied by *redis.TokenStore.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticate validates the bearer token and loads its claims into the
// request context. Tokens revoked by logout are rejected even before
// their natural expiry.
func Authenticate(jwtConfig *config.JWTConfig, tokenStore RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Authorization header must be a bearer token")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := util.ValidateToken(tokenString, jwtConfig.Secret)
		if err != nil {
			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Token has expired")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid token")
			}
			c.Abort()
			return
		}

		revoked, err := tokenStore.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Error("Failed to check token revocation", err, map[string]interface{}{
				"user_id": claims.UserID,
			})
			errors.InternalError(c, "")
			c.Abort()
			return
		}
		if revoked {
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Token has been revoked")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserEmailKey, claims.Email)
		c.Set(ContextUserRoleKey, claims.Role)
		c.Set(ContextTokenKey, tokenString)
		c.Next()
	}
}

// RequireRole gates a route group to one role. It runs after Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRoleKey)
		if !exists {
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "Role information is missing")
			c.Abort()
			return
		}

		if userRole != role {
			logger.Warn("Access denied, insufficient role", map[string]interface{}{
				"required_role": role,
				"user_role":     userRole,
				"path":          c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzAdminOnly, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the context
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// GetUserRole returns the authenticated user's role from the context
func GetUserRole(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(string)
	return role, ok
}

// GetToken returns the raw bearer token from the context
func GetToken(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextTokenKey)
	if !exists {
		return "", false
	}
	token, ok := value.(string)
	return token, ok
}
