package availability

import (
	"net/http"
	"strings"

	"github.com/danny20232023/hris-sub007/internal/shared/apperror"
	"github.com/danny20232023/hris-sub007/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("availability.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("availability.handler")
	}
	return &Handler{service: service, logger: l}
}

// Check serves GET /availability?employee_ids=a,b&dates=2025-03-10,2025-03-11&exclude_request_id=x.
// Repeated keys and the bracketed form (employee_ids[]=a) are accepted too.
func (h *Handler) Check(c *gin.Context) {
	q := CheckQuery{
		EmployeeIDs:      listParam(c, "employee_ids"),
		Dates:            listParam(c, "dates"),
		ExcludeRequestID: c.Query("exclude_request_id"),
	}

	result, err := h.service.Check(c.Request.Context(), c.GetString("company_id"), q)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("availability check failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
			zap.Error(err),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func listParam(c *gin.Context, key string) []string {
	raw := append(c.QueryArray(key), c.QueryArray(key+"[]")...)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
