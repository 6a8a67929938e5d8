package middleware

import (
	"github.com/danny20232023/hris-sub007/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds what a client may send; longer ids are replaced.
const maxRequestIDLen = 64

// RequestID accepts the caller's X-Request-ID when it is short printable ASCII, otherwise
// it generates one. The id is echoed back and stored in the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := requestIDFrom(c)
		c.Set("request_id", rid)
		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

func requestIDFrom(c *gin.Context) string {
	if rid := c.GetString("request_id"); rid != "" {
		return rid
	}
	if rid := c.GetHeader(RequestIDHeader); validRequestID(rid) {
		return rid
	}
	return uuid.NewString()
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < 0x21 || rid[i] > 0x7e {
			return false
		}
	}
	return true
}
