package tools

import (
	"go-intranet/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the tool ledger endpoints on an authenticated group.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authz rbac.Service) {
	g := rg.Group("/tools")
	g.POST("/register-action", rbac.Authorize(authz, "tools", "register"), h.RegisterAction)
	g.GET("/history", rbac.Authorize(authz, "tools", "read"), h.ListHistory)
	g.GET("/status", rbac.Authorize(authz, "tools", "read"), h.Status)
	g.DELETE("/delete-action/:id", rbac.Authorize(authz, "tools", "delete"), h.Delete)
}
