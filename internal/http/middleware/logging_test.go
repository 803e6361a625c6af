package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"cabsync/internal/http/middleware"
	"cabsync/internal/infra"
)

func TestLogging_CallerFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()
	token := &infra.CallerToken{UID: "rider123", Claims: map[string]interface{}{"plan": "pro"}}

	r := gin.New()
	r.Use(middleware.Logging(log), middleware.Auth(&stubVerifier{token: token}))
	r.GET("/api/providers", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
	req.Header.Set("Authorization", "Bearer validtoken")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "rider123", entry.Data["caller"])
	require.Equal(t, "pro", entry.Data["plan"])
	require.Equal(t, "/api/providers", entry.Data["path"])
	require.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestLogging_ServerErrorIsWarn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(middleware.Logging(log))
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, "", entry.Data["plan"])
}
