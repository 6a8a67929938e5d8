package employee

import (
	"github.com/danny20232023/hris-sub007/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the read-only employee directory used by leave and travel pickers.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, logger *zap.Logger) {
	canRead := middleware.RBACAuthorize(rbacService, "employee", "read")

	employees := r.Group("/employees",
		middleware.AuthMiddleware(),
		middleware.ContextLogger(logger),
	)
	employees.GET("", middleware.RateLimitByUser(3, 10), canRead, handler.GetAll)
	// pickers reload often, so options get a larger bucket
	employees.GET("/options", middleware.RateLimitByUser(5, 20), canRead, handler.GetOptions)
	employees.GET("/:id", middleware.RateLimitByUser(3, 10), canRead, handler.GetByID)
}
