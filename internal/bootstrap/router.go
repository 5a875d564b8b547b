package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/hourglass-app/hourglass-backend/config"
	httpapi "github.com/hourglass-app/hourglass-backend/internal/api/http"
	"github.com/hourglass-app/hourglass-backend/internal/api/http/middleware"
	"github.com/hourglass-app/hourglass-backend/internal/auth"
	authhttp "github.com/hourglass-app/hourglass-backend/internal/auth/http"
	authservice "github.com/hourglass-app/hourglass-backend/internal/auth/service"
	"github.com/hourglass-app/hourglass-backend/internal/logging"
	timetrackhttp "github.com/hourglass-app/hourglass-backend/internal/timetrack/http"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/service"
)

type RouterDeps struct {
	Config      *config.Config
	Log         logging.Logger
	DB          *pgxpool.Pool
	Tokens      *auth.TokenManager
	AuthService *authservice.AuthService
	UserService *service.UserService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{dep.Config.App.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID(dep.Log))

	healthHandler := httpapi.NewHealthHandler("hourglass-backend", dep.Config.App.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")

	secure := dep.Config.App.Environment == "production"
	loginLimiter := middleware.RateLimit(rate.Limit(1), 5)
	authhttp.Register(api, dep.AuthService, dep.Tokens, dep.Config.App.ClientURL, secure, loginLimiter)

	protected := api.Group("", auth.Middleware(dep.Tokens))
	timetrackhttp.Register(protected, dep.UserService)

	return r
}
