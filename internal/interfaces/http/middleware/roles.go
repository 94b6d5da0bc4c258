package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/markethub/backend/internal/interfaces/http/dto"
)

// RequireRoles allows the request through only when the JWT role is
// one of the given roles. Must run after JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient role"))
			return
		}
		c.Next()
	}
}
