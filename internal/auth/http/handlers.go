// Package http exposes registration, login, logout, refresh, and activation.
// The refresh token travels in an httpOnly cookie; a second cookie carries
// the user type for the client's routing.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/hourglass-app/hourglass-backend/internal/api/http"
	"github.com/hourglass-app/hourglass-backend/internal/auth"
	"github.com/hourglass-app/hourglass-backend/internal/auth/service"
	timetrackhttp "github.com/hourglass-app/hourglass-backend/internal/timetrack/http"
)

const (
	refreshCookie  = "refreshToken"
	userTypeCookie = "userType"
)

type Handler struct {
	svc       *service.AuthService
	jwt       *auth.TokenManager
	clientURL string
	secure    bool
}

// Register mounts the public auth routes. rateLimit guards the two
// credential endpoints.
func Register(rg *gin.RouterGroup, svc *service.AuthService, jwt *auth.TokenManager, clientURL string, secure bool, rateLimit gin.HandlerFunc) {
	h := &Handler{svc: svc, jwt: jwt, clientURL: clientURL, secure: secure}

	rg.POST("/registration", rateLimit, h.registration)
	rg.POST("/login", rateLimit, h.login)
	rg.POST("/logout", h.logout)
	rg.GET("/activate/:link", h.activate)
	rg.GET("/refresh", h.refresh)
}

func (h *Handler) registration(c *gin.Context) {
	var req registrationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "E_VALIDATION_ERROR"})
		return
	}

	session, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.IsAdmin)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	h.setSessionCookies(c, session)
	c.JSON(nethttp.StatusOK, timetrackhttp.NewUserView(session.User))
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "E_VALIDATION_ERROR"})
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	h.setSessionCookies(c, session)
	c.JSON(nethttp.StatusOK, sessionView{
		AccessToken:  session.Tokens.AccessToken,
		RefreshToken: session.Tokens.RefreshToken,
		User:         timetrackhttp.NewUserView(session.User),
	})
}

func (h *Handler) logout(c *gin.Context) {
	token, _ := c.Cookie(refreshCookie)
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		httpapi.RespondError(c, err)
		return
	}

	h.clearSessionCookies(c)
	c.JSON(nethttp.StatusOK, gin.H{"ok": true})
}

func (h *Handler) activate(c *gin.Context) {
	if err := h.svc.Activate(c.Request.Context(), c.Param("link")); err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.Redirect(nethttp.StatusFound, h.clientURL+"?activated=true")
}

func (h *Handler) refresh(c *gin.Context) {
	token, _ := c.Cookie(refreshCookie)

	session, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	h.setSessionCookies(c, session)
	c.JSON(nethttp.StatusOK, sessionView{
		AccessToken:  session.Tokens.AccessToken,
		RefreshToken: session.Tokens.RefreshToken,
		User:         timetrackhttp.NewUserView(session.User),
	})
}

func (h *Handler) setSessionCookies(c *gin.Context, s *service.Session) {
	maxAge := int(h.jwt.RefreshValidity().Seconds())

	c.SetSameSite(nethttp.SameSiteLaxMode)
	c.SetCookie(refreshCookie, s.Tokens.RefreshToken, maxAge, "/", "", h.secure, true)

	userType := "USER"
	if s.User.IsAdmin {
		userType = "ADMIN"
	}
	c.SetCookie(userTypeCookie, userType, maxAge, "/", "", h.secure, true)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	c.SetCookie(refreshCookie, "", -1, "/", "", h.secure, true)
	c.SetCookie(userTypeCookie, "", -1, "/", "", h.secure, true)
}
