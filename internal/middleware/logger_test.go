package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"preventivi/internal/middleware"
)

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestLogger_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log))
	r.GET("/missing", func(c *gin.Context) {
		middleware.GetLogger(c).Info("inside handler")
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/missing", http.NoBody)
	req.Header.Set("X-Request-ID", "req-1")
	r.ServeHTTP(w, req)

	out := buf.String()
	assert.Contains(t, out, `"msg":"inside handler"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"level":"warning"`)
}
