package travel

import (
	"github.com/danny20232023/hris-sub007/internal/middleware"
	"github.com/danny20232023/hris-sub007/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	travels := r.Group("/travel-requests")
	travels.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.ContextLogger(logger))
	{
		travels.GET("", middleware.RBACAuthorize(rbacService, component, workflow.ActionRead), handler.GetAll)
		travels.GET("/:id", middleware.RBACAuthorize(rbacService, component, workflow.ActionRead), handler.GetByID)
		travels.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, component, workflow.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		travels.POST("/validate", middleware.RBACAuthorize(rbacService, component, workflow.ActionRead), handler.Validate)
		travels.PUT("/:id", handler.Update)
		travels.PUT("/:id/status", handler.UpdateStatus)
		travels.DELETE("/:id", middleware.RBACAuthorize(rbacService, component, workflow.ActionDelete), handler.Delete)
	}

	portal := r.Group("/portal/travel-requests")
	portal.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.ContextLogger(logger))
	{
		portal.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, component, workflow.ActionSubmit),
			middleware.Idempotency(rdb),
			handler.CreateFromPortal,
		)
	}
}
