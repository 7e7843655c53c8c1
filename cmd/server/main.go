package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	accounts "github.com/goliatone/go-accounts"
)

func main() {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	logger := accounts.NewZerologAdapter(zl)

	cfg, err := accounts.LoadConfigFromEnv()
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to load configuration")
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DBDSN)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to open database")
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := accounts.CreateSchema(ctx, db); err != nil {
		zl.Fatal().Err(err).Msg("failed to create schema")
	}

	repo := accounts.NewRepositoryManager(db)
	repo.MustValidate()

	usersRepo := repo.Users()
	tokensRepo := repo.Tokens()

	tokenService := accounts.NewTokenService(tokensRepo, usersRepo, cfg, logger)
	auther := accounts.NewAuther(tokenService, tokensRepo, usersRepo, logger).
		WithActivitySink(accounts.ActivitySinkFunc(func(_ context.Context, event accounts.ActivityEvent) error {
			logger.Info("activity", "event", string(event.EventType), "user", event.UserID)
			return nil
		}))
	userService := accounts.NewUserService(usersRepo, logger)
	guard := accounts.NewRouteGuard(tokenService, usersRepo, logger)

	mailer := buildMailer(cfg, logger, zl)

	app := fiber.New(fiber.Config{
		AppName:      "go-accounts",
		ErrorHandler: accounts.NewErrorHandler(logger, !cfg.IsProduction()),
	})

	authController := accounts.NewAuthController(
		accounts.WithAuthUsers(userService),
		accounts.WithAuthAuther(auther),
		accounts.WithAuthTokens(tokenService),
		accounts.WithAuthMailer(mailer),
		accounts.WithAuthLogger(logger),
	)
	userController := accounts.NewUserController(userService, logger)

	accounts.RegisterRoutes(app, authController, userController, guard)

	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			zl.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zl.Error().Err(err).Msg("shutdown error")
	}
}

func buildMailer(cfg *accounts.Config, logger accounts.Logger, zl zerolog.Logger) accounts.Mailer {
	if cfg.SMTPHost == "" {
		zl.Warn().Msg("SMTP not configured, emails go to the log")
		return accounts.NewLogMailer(cfg.AppURL, logger)
	}

	renderer, err := accounts.NewEmailRenderer(cfg.TemplatesDir)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to load email templates")
	}

	return accounts.NewSMTPMailer(cfg, renderer, logger)
}
