package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"librobuddy-backend/internal/shared"
	"librobuddy-backend/internal/shared/response"
	"librobuddy-backend/pkg/jwt"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "role"
	ContextKeyEmail  = "email"
)

// AuthMiddleware validates the bearer access token and puts user id and role on the context
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorResponse(c, 401, "AUTH004", "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorResponse(c, 401, "AUTH004", "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("token rejected")
			response.ErrorResponse(c, 401, "AUTH004", "invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.ErrorResponse(c, 401, "AUTH004", "invalid user ID in token")
			c.Abort()
			return
		}

		role := shared.Role(claims.Role)
		if !role.IsValid() {
			response.ErrorResponse(c, 401, "AUTH004", "invalid role in token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyRole, role)
		c.Set(ContextKeyEmail, claims.Email)

		c.Next()
	}
}

// GetActor returns the authenticated caller set by AuthMiddleware
func GetActor(c *gin.Context) (shared.Actor, bool) {
	rawID, ok := c.Get(ContextKeyUserID)
	if !ok {
		return shared.Actor{}, false
	}
	userID, ok := rawID.(uuid.UUID)
	if !ok {
		return shared.Actor{}, false
	}

	rawRole, ok := c.Get(ContextKeyRole)
	if !ok {
		return shared.Actor{}, false
	}
	role, ok := rawRole.(shared.Role)
	if !ok {
		return shared.Actor{}, false
	}

	return shared.Actor{UserID: userID, Role: role}, true
}
