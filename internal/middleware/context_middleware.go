package middleware

import (
	"github.com/danny20232023/hris-sub007/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger runs after AuthMiddleware. It moves the caller identity from the gin context
// into the request context and attaches a logger carrying it.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(c *gin.Context) {
		rid := requestIDFrom(c)
		c.Set("request_id", rid)
		c.Header(RequestIDHeader, rid)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		ctx = contextutil.WithIdentity(ctx, c.GetString("company_id"), c.GetString("employee_id"))
		ctx = contextutil.WithLogger(ctx, logger.With(contextutil.LogFields(ctx)...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
