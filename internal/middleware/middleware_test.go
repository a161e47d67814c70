package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"orbitex/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return &logger.Logger{Logger: zap.New(core)}, logs
}

func newLoggedRouter(log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logger(log))
	return router
}

func TestLoggerRecordsAuthenticatedUID(t *testing.T) {
	log, logs := newObservedLogger()
	router := newLoggedRouter(log)
	router.GET("/ping", func(c *gin.Context) {
		c.Set("uid", int64(42))
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))

	entries := logs.FilterMessage("访问日志").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 42, fields["用户ID"])
	assert.Equal(t, "/ping?x=1", fields["路径"])
	assert.EqualValues(t, http.StatusOK, fields["状态码"])
}

func TestLoggerOmitsUIDWhenUnauthenticated(t *testing.T) {
	log, logs := newObservedLogger()
	router := newLoggedRouter(log)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	entries := logs.FilterMessage("访问日志").All()
	require.Len(t, entries, 1)
	_, ok := entries[0].ContextMap()["用户ID"]
	assert.False(t, ok)
}
