package request

import (
	"go-intranet/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HR request endpoints on an authenticated group.
func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authz rbac.Service) {
	g := rg.Group("/requests")
	g.POST("", rbac.Authorize(authz, "requests", "create"), h.Submit)
	g.POST("/medical-leave", rbac.Authorize(authz, "requests", "create"), h.SubmitMedicalLeave)
	g.GET("", rbac.Authorize(authz, "requests", "read"), h.List)
	g.POST("/:id/decision", rbac.Authorize(authz, "requests", "decide"), h.Decide)
}
