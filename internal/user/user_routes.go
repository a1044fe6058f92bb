package user

import (
	"go-intranet/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	admin := r.Group("/admin")
	{
		admin.POST("/create-user", rbac.Authorize(rbacService, "users", "create"), handler.Create)
	}
}
