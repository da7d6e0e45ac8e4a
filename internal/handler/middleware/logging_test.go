//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"wheelshare/internal/handler/httperr"
	"wheelshare/internal/handler/middleware"
	"wheelshare/internal/pkg/config"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/shared"
	"wheelshare/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.LoggingMiddleware(nil, config.NewTestConfig().Log))
	engine.Use(middleware.ErrorHandler())
	return engine
}

func TestLoggingMiddleware_CorrelationID(t *testing.T) {
	engine := newEngine()
	var seen string
	engine.GET("/ping", func(c *gin.Context) {
		seen = shared.CorrelationID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	rec := httptest.PerformRequest(t, engine, http.MethodGet, "/ping", nil, "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestErrorHandler(t *testing.T) {
	engine := newEngine()
	engine.GET("/public", func(c *gin.Context) {
		resp := httperr.FromError(errs.Define("slot taken", errs.ErrAvailability))
		_ = c.Error(&gin.Error{Err: errs.New("slot taken"), Type: gin.ErrorTypePublic, Meta: resp})
	})
	engine.GET("/private", func(c *gin.Context) {
		_ = c.Error(errs.New("boom"))
	})
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantMsg    string
	}{
		{name: "公開エラーはMetaのまま返す", path: "/public", wantStatus: http.StatusConflict, wantMsg: "slot taken"},
		{name: "非公開エラーは500", path: "/private", wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
		{name: "panicは500", path: "/panic", wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, engine, http.MethodGet, tt.path, nil, "")
			httptest.AssertErrorResponse(t, rec, tt.wantStatus, tt.wantMsg)
		})
	}
}
