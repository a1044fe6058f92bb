package notification

import (
	"go-intranet/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the notification endpoints on an authenticated group.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authz rbac.Service) {
	g := rg.Group("/notifications")
	g.GET("", rbac.Authorize(authz, "notifications", "read"), h.List)
	g.PATCH("/:id/read", rbac.Authorize(authz, "notifications", "update"), h.MarkRead)
}
