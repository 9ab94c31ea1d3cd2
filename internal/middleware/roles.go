package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
)

// RequireRoles lets the request through only for the listed roles. It must
// run after AuthMiddleware.
func RequireRoles(roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			httperr.Abort(c, errMissingHeader)
			return
		}
		if err := access.RequireRole(claims, roles...); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.Next()
	}
}
