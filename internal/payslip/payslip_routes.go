package payslip

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("", middleware.RBACAuthorize(rbacService, "payslip", "read"), handler.GetAll)
		payslips.POST("/preview", middleware.RBACAuthorize(rbacService, "payslip", "create"), handler.Preview)
		if redisClient != nil {
			payslips.POST(
				"/send",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payslip", "create"),
				handler.Send,
			)
		} else {
			payslips.POST("/send", middleware.RBACAuthorize(rbacService, "payslip", "create"), handler.Send)
		}
	}
}
