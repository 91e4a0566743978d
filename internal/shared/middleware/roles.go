package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librobuddy-backend/internal/shared"
	"librobuddy-backend/internal/shared/response"
)

// RequireRoles allows the request through only for the listed roles. Must run after AuthMiddleware.
func RequireRoles(roles ...shared.Role) gin.HandlerFunc {
	allowed := make(map[shared.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH004", "authentication required")
			c.Abort()
			return
		}

		if _, ok := allowed[actor.Role]; !ok {
			response.Forbidden(c, "Access denied: insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// StaffOnly is RequireRoles(cashier, admin)
func StaffOnly() gin.HandlerFunc {
	return RequireRoles(shared.RoleCashier, shared.RoleAdmin)
}
