// Package http exposes the roster, ledger, and listing operations over gin.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/hourglass-app/hourglass-backend/internal/api/http"
	"github.com/hourglass-app/hourglass-backend/internal/auth"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/domain"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/service"
)

type Handler struct {
	svc *service.UserService
}

// Register mounts the authenticated routes. rg must already run the auth
// middleware; the admin-only routes add RequireAdmin on top.
func Register(rg *gin.RouterGroup, svc *service.UserService) {
	h := &Handler{svc: svc}

	rg.GET("/projects", h.myProjects)
	rg.POST("/project", h.projectStats)
	rg.PATCH("/tracking", h.tracking)
	rg.PATCH("/stat", h.editStat)

	admin := rg.Group("", auth.RequireAdmin())
	admin.POST("/users", h.listUsers)
	admin.PATCH("/edit-user/:id", h.editUser)
	admin.DELETE("/delete-user/:id", h.deleteUser)
}

func (h *Handler) listUsers(c *gin.Context) {
	var req listUsersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "E_VALIDATION_ERROR"})
		return
	}

	filter := domain.UserFilter{
		Email:    req.Email,
		Projects: req.Projects,
	}
	for _, t := range req.UserTypes {
		filter.UserTypes = append(filter.UserTypes, domain.UserType(t))
	}
	for _, a := range req.UserActivity {
		filter.UserActivity = append(filter.UserActivity, domain.UserActivity(a))
	}

	page, err := h.svc.ListUsers(c.Request.Context(), service.UserListRequest{
		Page:   req.Page,
		Limit:  req.Limit,
		Filter: filter,
	})
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	users := make([]UserView, 0, len(page.Items))
	for i := range page.Items {
		users = append(users, NewUserView(&page.Items[i]))
	}
	c.JSON(nethttp.StatusOK, UsersPageView{
		Users:       users,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	})
}

func (h *Handler) editUser(c *gin.Context) {
	var req editUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "E_VALIDATION_ERROR"})
		return
	}

	u, err := h.svc.ReconcileRoster(c.Request.Context(), service.ReconcileRequest{
		UserID:       c.Param("id"),
		ProjectNames: req.Projects,
		IsAdmin:      req.IsAdmin,
	})
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, NewUserView(u))
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.RespondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"ok": true, "message": "USER_WAS_DELETED"})
}

// tracking appends a ledger entry. The body may name another user, which is
// an admin-only path; everyone else records against themselves.
func (h *Handler) tracking(c *gin.Context) {
	var req trackingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "E_VALIDATION_ERROR"})
		return
	}

	userID, ok := h.targetUser(c, req.UserID)
	if !ok {
		return
	}

	u, err := h.svc.TrackHours(c.Request.Context(), service.TrackRequest{
		UserID:    userID,
		ProjectID: req.ProjectID,
		Hours:     req.Hours,
		Date:      req.Date,
		Comment:   req.Comment,
	})
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, NewUserView(u))
}

func (h *Handler) editStat(c *gin.Context) {
	var req editStatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "E_VALIDATION_ERROR"})
		return
	}

	userID, ok := h.targetUser(c, req.UserID)
	if !ok {
		return
	}

	p, err := h.svc.EditStat(c.Request.Context(), service.EditStatRequest{
		UserID:    userID,
		ProjectID: req.ProjectID,
		StatID:    req.StatID,
		Hours:     req.Hours,
		Date:      req.Date,
		Comment:   req.Comment,
	})
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	c.JSON(nethttp.StatusOK, NewProjectView(*p))
}

func (h *Handler) myProjects(c *gin.Context) {
	projects, err := h.svc.ActiveProjects(c.Request.Context(), auth.UserID(c))
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, NewProjectView(p))
	}
	c.JSON(nethttp.StatusOK, views)
}

func (h *Handler) projectStats(c *gin.Context) {
	var req projectStatsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "E_VALIDATION_ERROR"})
		return
	}

	res, err := h.svc.ListEntries(c.Request.Context(), service.EntryListRequest{
		UserID:    auth.UserID(c),
		ProjectID: req.ProjectID,
		Page:      req.Page,
		Limit:     req.Limit,
		ThisWeek:  req.ThisWeek,
		ThisMonth: req.ThisMonth,
		PrevWeek:  req.PrevWeek,
		PrevMonth: req.PrevMonth,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
	})
	if err != nil {
		httpapi.RespondError(c, err)
		return
	}

	stats := make([]StatView, 0, len(res.Stats.Items))
	for _, s := range res.Stats.Items {
		stats = append(stats, NewStatView(s))
	}
	c.JSON(nethttp.StatusOK, ProjectStatsView{
		ProjectView: NewProjectView(res.Project),
		Stats: StatsPageView{
			Items:       stats,
			CurrentPage: res.Stats.CurrentPage,
			TotalPages:  res.Stats.TotalPages,
		},
	})
}

// targetUser resolves which user a mutation applies to. Writing someone
// else's ledger requires the admin flag.
func (h *Handler) targetUser(c *gin.Context, requested string) (string, bool) {
	self := auth.UserID(c)
	if requested == "" || requested == self {
		return self, true
	}
	if !c.GetBool(auth.CtxIsAdmin) {
		c.JSON(nethttp.StatusForbidden, gin.H{"ok": false, "error": "E_FORBIDDEN"})
		return "", false
	}
	return requested, true
}
