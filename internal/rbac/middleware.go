package rbac

import (
	"net/http"

	"go-intranet/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on the authenticated account's role. Must run after
// the auth middleware, which puts the token-bound role on the context.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Se requiere autenticación.", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Error interno del servidor.", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"Acceso denegado. No tiene permisos para esta operación.",
				gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}
