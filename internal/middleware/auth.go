package middleware

import (
	"strings"

	"resi-be-svc/internal/models"
	"resi-be-svc/internal/service"
	"resi-be-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by Auth for downstream handlers
const (
	ContextUserID     = "user_id"
	ContextRole       = "role"
	ContextResidentID = "resident_id"
)

// Auth validates the bearer token and stores the caller identity in the
// request context
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			utils.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextResidentID, claims.ResidentID)
		c.Next()
	}
}

// AdminOnly rejects callers without the ADMIN role. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != models.RoleAdmin {
			utils.Forbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated account id from the request context
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// ResidentID returns the caller's resident id, zero for admin accounts
func ResidentID(c *gin.Context) uint {
	if v, ok := c.Get(ContextResidentID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// IsAdmin reports whether the caller holds the ADMIN role
func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextRole) == models.RoleAdmin
}
