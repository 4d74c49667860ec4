package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bhandras/clawdeck/pkg/logger"
)

func TestApplySecurityHeaders(t *testing.T) {
	h := http.Header{}
	ApplySecurityHeaders(h, "")

	require.Equal(t, "DENY", h.Get("X-Frame-Options"))
	require.Equal(t, BuildCSP(), h.Get("Content-Security-Policy"))
	require.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	require.Equal(t, "no-referrer", h.Get("Referrer-Policy"))

	// Applying twice must not duplicate values.
	ApplySecurityHeaders(h, "")
	require.Len(t, h.Values("X-Frame-Options"), 1)
	require.Len(t, h.Values("Content-Security-Policy"), 1)
}

func TestApplySecurityHeadersCustomCSP(t *testing.T) {
	h := http.Header{}
	ApplySecurityHeaders(h, "default-src 'none'")
	require.Equal(t, "default-src 'none'", h.Get("Content-Security-Policy"))
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(""))
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	require.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetFlags(0)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x?q=1", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	r.ServeHTTP(w, req)

	out := buf.String()
	require.Contains(t, out, "[GET] /x?q=1 - 200 (")
	require.Contains(t, out, "rid=req-7")
}

func TestRequestIDMiddlewareGenerates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())

	var seen string
	r.GET("/x", func(c *gin.Context) {
		id, ok := GetRequestID(c)
		require.True(t, ok)
		seen = id
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	echoed := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, echoed)
	require.Equal(t, seen, echoed)
	_, err := uuid.Parse(echoed)
	require.NoError(t, err)
}

func TestRequestIDMiddlewareEchoes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	r.ServeHTTP(w, req)

	require.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
}
