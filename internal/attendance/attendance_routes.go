package attendance

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/next-kind", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.NextKind)
		attendances.POST("",
			middleware.RateLimitByEmployee(rate.Limit(1), 5),
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			h.RecordEvent,
		)
	}
}
