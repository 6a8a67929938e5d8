package credit

import (
	"github.com/danny20232023/hris-sub007/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	credits := r.Group("/employees/:id/credits")
	credits.Use(middleware.AuthMiddleware())
	{
		credits.GET("", middleware.RBACAuthorize(rbacService, "credit", "read"), handler.GetBalances)
		credits.GET("/:category/entries", middleware.RBACAuthorize(rbacService, "credit", "read"), handler.GetHistory)
		credits.POST("/adjust", middleware.RBACAuthorize(rbacService, "credit", "adjust"), handler.Adjust)
	}
}
