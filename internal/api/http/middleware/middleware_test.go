package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/hourglass-app/hourglass-backend/internal/logging"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(capture *string) *gin.Engine {
		r := gin.New()
		r.Use(RequestID(logging.New("error")))
		r.GET("/ping", func(c *gin.Context) {
			*capture = GetRequestID(c.Request.Context())
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("generates an id when the header is absent", func(t *testing.T) {
		var seen string
		router := newRouter(&seen)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get("X-Request-Id"))
	})

	t.Run("propagates an incoming id", func(t *testing.T) {
		var seen string
		router := newRouter(&seen)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", "rid-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "rid-123", seen)
		assert.Equal(t, "rid-123", w.Header().Get("X-Request-Id"))
	})
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/login", RateLimit(rate.Limit(1), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func() int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		return w.Code
	}

	require.Equal(t, http.StatusOK, hit())
	require.Equal(t, http.StatusOK, hit())

	code := hit()
	assert.Equal(t, http.StatusTooManyRequests, code, "burst exhausted")
}
