package availability

import (
	"github.com/danny20232023/hris-sub007/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	availability := r.Group("/availability")
	availability.Use(middleware.AuthMiddleware())
	{
		availability.GET("", middleware.RBACAuthorize(rbacService, "availability", "read"), handler.Check)
	}
}
