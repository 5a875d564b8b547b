package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourglass-app/hourglass-backend/internal/auth"
	tokenrepo "github.com/hourglass-app/hourglass-backend/internal/auth/repository"
	"github.com/hourglass-app/hourglass-backend/internal/auth/service"
	"github.com/hourglass-app/hourglass-backend/internal/logging"
	"github.com/hourglass-app/hourglass-backend/internal/mail"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/repository"
)

const clientURL = "http://localhost:3000"

func newTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := repository.NewMemoryRepository()
	log := logging.New("error")
	jwt := auth.NewTokenManager("test-secret", 30*time.Minute, 24*time.Hour)
	tokens := tokenrepo.NewTokenRepository(client, 24*time.Hour)
	svc := service.NewAuthService(users, tokens, jwt, mail.NewLogMailer(log), log, "http://localhost:8080")

	router := gin.New()
	noLimit := func(c *gin.Context) { c.Next() }
	Register(router.Group("/api"), svc, jwt, clientURL, false, noLimit)
	return router, users
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegistrationEndpoint(t *testing.T) {
	t.Run("creates the account and sets session cookies", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := postJSON(t, router, "/api/registration", gin.H{"email": "a@x.io", "password": "secret"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		refresh := cookieByName(w, "refreshToken")
		require.NotNil(t, refresh)
		assert.NotEmpty(t, refresh.Value)
		assert.True(t, refresh.HttpOnly)

		userType := cookieByName(w, "userType")
		require.NotNil(t, userType)
		assert.Equal(t, "USER", userType.Value)

		assert.NotContains(t, w.Body.String(), "passwordHash")
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := postJSON(t, router, "/api/registration", gin.H{"email": "not-an-email", "password": "secret"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "E_VALIDATION_ERROR")
	})

	t.Run("rejects a short password", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := postJSON(t, router, "/api/registration", gin.H{"email": "a@x.io", "password": "ab"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		router, _ := newTestRouter(t)
		body := gin.H{"email": "a@x.io", "password": "secret"}

		require.Equal(t, http.StatusOK, postJSON(t, router, "/api/registration", body).Code)
		w := postJSON(t, router, "/api/registration", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "USER_ALREADY_EXISTED")
	})
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	require.Equal(t, http.StatusOK,
		postJSON(t, router, "/api/registration", gin.H{"email": "a@x.io", "password": "secret"}).Code)

	t.Run("returns the session", func(t *testing.T) {
		w := postJSON(t, router, "/api/login", gin.H{"email": "a@x.io", "password": "secret"})
		require.Equal(t, http.StatusOK, w.Code)

		var session struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		require.NotNil(t, cookieByName(w, "refreshToken"))
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, router, "/api/login", gin.H{"email": "a@x.io", "password": "wrong"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown account", func(t *testing.T) {
		w := postJSON(t, router, "/api/login", gin.H{"email": "nobody@x.io", "password": "secret"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRefreshEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	reg := postJSON(t, router, "/api/registration", gin.H{"email": "a@x.io", "password": "secret"})
	require.Equal(t, http.StatusOK, reg.Code)
	refresh := cookieByName(reg, "refreshToken")
	require.NotNil(t, refresh)

	t.Run("rotates the cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/refresh", nil)
		req.AddCookie(refresh)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		rotated := cookieByName(w, "refreshToken")
		require.NotNil(t, rotated)
		assert.NotEqual(t, refresh.Value, rotated.Value)
	})

	t.Run("revoked token is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/refresh", nil)
		req.AddCookie(refresh)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/refresh", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	reg := postJSON(t, router, "/api/registration", gin.H{"email": "a@x.io", "password": "secret"})
	require.Equal(t, http.StatusOK, reg.Code)
	refresh := cookieByName(reg, "refreshToken")
	require.NotNil(t, refresh)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(refresh)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cleared := cookieByName(w, "refreshToken")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	t.Run("refresh no longer works", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/refresh", nil)
		req.AddCookie(refresh)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestActivateEndpoint(t *testing.T) {
	router, users := newTestRouter(t)
	require.Equal(t, http.StatusOK,
		postJSON(t, router, "/api/registration", gin.H{"email": "a@x.io", "password": "secret"}).Code)

	stored, err := users.GetByEmail(context.Background(), "a@x.io")
	require.NoError(t, err)

	t.Run("redirects to the client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/activate/"+stored.ActivationLink, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, clientURL+"?activated=true", w.Header().Get("Location"))

		activated, err := users.GetByEmail(context.Background(), "a@x.io")
		require.NoError(t, err)
		assert.True(t, activated.IsActivated)
	})

	t.Run("unknown link", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/activate/bogus", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INJURED_LINK")
	})
}
