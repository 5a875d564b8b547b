package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hourglass-app/hourglass-backend/internal/auth"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/domain"
)

// RespondError maps domain and auth failures to stable machine-readable
// codes. Anything unclassified is an internal error; the concrete message
// stays in the logs, not the response.
func RespondError(c *gin.Context, err error) {
	status, code := classify(err)
	c.JSON(status, gin.H{"ok": false, "error": code})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "USER_NOT_FOUND"
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound, "PROJECT_NOT_FOUND"
	case errors.Is(err, domain.ErrStatNotFound):
		return http.StatusNotFound, "STAT_NOT_FOUND"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "USER_ALREADY_EXISTED"
	case errors.Is(err, domain.ErrBadDate),
		errors.Is(err, domain.ErrBadPagination),
		errors.Is(err, domain.ErrNegativeHours):
		return http.StatusBadRequest, "E_VALIDATION_ERROR"
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, "E_CONFLICT"
	case errors.Is(err, auth.ErrInjuredLink):
		return http.StatusBadRequest, "INJURED_LINK"
	case errors.Is(err, auth.ErrBadCredentials):
		return http.StatusBadRequest, "E_VALIDATION_ERROR"
	case errors.Is(err, auth.ErrUnauthorized), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "E_UNAUTHORIZED"
	default:
		return http.StatusInternalServerError, "E_INTERNAL"
	}
}
