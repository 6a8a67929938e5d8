package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danny20232023/hris-sub007/internal/middleware"
	"github.com/danny20232023/hris-sub007/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	tests := []struct {
		name     string
		header   string
		keepSent bool
	}{
		{"caller id kept", "req-123", true},
		{"missing id generated", "", false},
		{"oversized id replaced", strings.Repeat("a", 65), false},
		{"whitespace id replaced", "bad id", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(middleware.RequestIDHeader)
			assert.NotEmpty(t, got)
			assert.Equal(t, got, w.Body.String())
			if tt.keepSent {
				assert.Equal(t, tt.header, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}
		})
	}
}

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/whoami",
		func(c *gin.Context) {
			c.Set("company_id", "company-1")
			c.Set("employee_id", "emp-1")
		},
		middleware.ContextLogger(zap.NewNop()),
		func(c *gin.Context) {
			ctx := c.Request.Context()
			c.JSON(http.StatusOK, gin.H{
				"request_id":  contextutil.GetRequestID(ctx),
				"company_id":  contextutil.GetCompanyID(ctx),
				"employee_id": contextutil.GetEmployeeID(ctx),
			})
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"request_id":"req-9","company_id":"company-1","employee_id":"emp-1"}`, w.Body.String())
}
