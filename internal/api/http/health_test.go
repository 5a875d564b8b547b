package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewHealthHandler("hourglass-backend", "1.2.3", nil).RegisterRoutes(router)

	for _, path := range []string{"/health", "/healthz"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusOK, w.Code)

			var res HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, "healthy", res.Status)
			assert.Equal(t, "hourglass-backend", res.Service)
			assert.Equal(t, "1.2.3", res.Version)
			assert.Equal(t, "disabled", res.DB, "no pool configured")
			assert.False(t, res.Timestamp.IsZero())
		})
	}
}
