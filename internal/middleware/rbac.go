package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/models"
	appErrors "github.com/noah-isme/erolls-portal/pkg/errors"
	"github.com/noah-isme/erolls-portal/pkg/response"
)

// RequireRoles admits only the listed roles. Unknown roles are always
// refused.
func RequireRoles(roles ...models.RoleID) gin.HandlerFunc {
	allowed := make(map[models.RoleID]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		role := models.ParseRole(claims.Role)
		if _, ok := allowed[role]; ok && role.Valid() {
			c.Next()
			return
		}
		label := string(role)
		if role == models.RoleUnknown {
			label = "Unknown"
		}
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role cannot access this resource", label)))
		c.Abort()
	}
}

// RequireCapability admits roles whose registry entry grants the
// capability selected by pick.
func RequireCapability(name string, pick func(models.Capabilities) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		role := models.ParseRole(claims.Role)
		if pick(models.CapabilitiesOf(role)) {
			c.Next()
			return
		}
		label := string(role)
		if role == models.RoleUnknown {
			label = "Unknown"
		}
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("%s role doesn't have permission to %s migrations", label, name)))
		c.Abort()
	}
}
