package settings

import (
	"github.com/gin-gonic/gin"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	group := r.Group("/settings")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/mail", middleware.RBACAuthorize(rbacService, "settings", "read"), handler.GetMail)
		group.PUT("/mail", middleware.RBACAuthorize(rbacService, "settings", "update"), handler.UpdateMail)
	}
}
