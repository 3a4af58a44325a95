package payroll

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

	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	{
		payroll.GET("/summary", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.Summary)
		if redisClient != nil {
			payroll.POST(
				"/payout",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(rbacService, "payroll", "pay"),
				handler.Payout,
			)
		} else {
			payroll.POST("/payout", middleware.RBACAuthorize(rbacService, "payroll", "pay"), handler.Payout)
		}
	}
}
