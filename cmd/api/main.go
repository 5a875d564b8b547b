package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hourglass-app/hourglass-backend/config"
	"github.com/hourglass-app/hourglass-backend/internal/auth"
	tokenrepo "github.com/hourglass-app/hourglass-backend/internal/auth/repository"
	authservice "github.com/hourglass-app/hourglass-backend/internal/auth/service"
	"github.com/hourglass-app/hourglass-backend/internal/bootstrap"
	"github.com/hourglass-app/hourglass-backend/internal/jobs"
	"github.com/hourglass-app/hourglass-backend/internal/logging"
	"github.com/hourglass-app/hourglass-backend/internal/mail"
	"github.com/hourglass-app/hourglass-backend/internal/storage/postgres"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/repository"
	"github.com/hourglass-app/hourglass-backend/internal/timetrack/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return err
	}

	pool, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessValidity, cfg.JWT.RefreshValidity)
	userRepo := repository.NewPostgresRepository(pool)
	tokenRepo := tokenrepo.NewTokenRepository(redisClient, cfg.JWT.RefreshValidity)

	var mailer mail.Mailer = mail.NewLogMailer(logger)
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	}

	userService := service.NewUserService(userRepo, logger)
	authService := authservice.NewAuthService(userRepo, tokenRepo, tokens, mailer, logger, cfg.App.APIURL)

	scheduler := jobs.NewScheduler(userService, logger)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:      cfg,
		Log:         logger,
		DB:          pool,
		Tokens:      tokens,
		AuthService: authService,
		UserService: userService,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server started", "port", cfg.Server.Port, "env", cfg.App.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
