package leave

import (
	"github.com/danny20232023/hris-sub007/internal/middleware"
	"github.com/danny20232023/hris-sub007/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegisterRoutes wires the staff and portal endpoints. Status changes and edits are authorised
// inside the service because the required action depends on the stored request.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.ContextLogger(logger))
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, component, workflow.ActionRead), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, component, workflow.ActionRead), handler.GetByID)
		leaves.POST("", middleware.RBACAuthorize(rbacService, component, workflow.ActionCreate), middleware.Idempotency(rdb), handler.Create)
		leaves.POST("/validate", middleware.RBACAuthorize(rbacService, component, workflow.ActionRead), handler.Validate)
		leaves.PUT("/:id", handler.Update)
		leaves.PUT("/:id/status", handler.UpdateStatus)
		leaves.DELETE("/:id", middleware.RBACAuthorize(rbacService, component, workflow.ActionDelete), handler.Delete)
	}

	portal := r.Group("/portal/leave-requests")
	portal.Use(middleware.AuthMiddleware(), middleware.ExtractUserID(), middleware.ContextLogger(logger))
	{
		portal.POST("", middleware.RBACAuthorize(rbacService, component, workflow.ActionSubmit), middleware.Idempotency(rdb), handler.CreateFromPortal)
	}
}
