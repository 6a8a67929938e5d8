package middleware

import (
	"github.com/gin-gonic/gin"
)

// ExtractUserID copies the authenticated employee onto user_id_validated; the portal
// endpoints treat it as the submitter.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		if employeeID == "" {
			abortWith(c, ErrTokenMissing)
			return
		}

		c.Set("user_id_validated", employeeID)
		c.Next()
	}
}
