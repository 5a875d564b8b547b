package http

import (
	timetrackhttp "github.com/hourglass-app/hourglass-backend/internal/timetrack/http"
)

type registrationReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3,max=32"`
	IsAdmin  bool   `json:"isAdmin"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// sessionView mirrors the original client contract: tokens in the body,
// refresh token additionally in an httpOnly cookie.
type sessionView struct {
	AccessToken  string                 `json:"accessToken"`
	RefreshToken string                 `json:"refreshToken"`
	User         timetrackhttp.UserView `json:"user"`
}
