package main

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	_ "github.com/Ananya-Krishnappa/fundoo-notes/docs" // swagger docs

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/auth"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/cache"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/config"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/db"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/handler"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/logger"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/mail"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/model"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/repository"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/router"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/service"
)

// @title Fundoo Notes API
// @version 1.0
// @description Notes-taking backend with labels, password reset and cached listings.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger.Init()
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Note{},
		&model.Label{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	cacheClient := cache.NewFromClient(redisClient)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)
	labelRepo := repository.NewLabelRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	resetTokenStore := auth.NewResetTokenStore(redisClient)
	resetTokenManager := auth.NewResetTokenManager(resetTokenStore)

	var mailer mail.Mailer = mail.NoopMailer{}
	if os.Getenv("SMTP_ENABLED") == "true" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, resetTokenManager, jwtService, mailer, cfg.ClientURL)
	noteService := service.NewNoteService(noteRepo, cacheClient)
	labelService := service.NewLabelService(labelRepo, noteRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	noteHandler := handler.NewNoteHandler(noteService)
	labelHandler := handler.NewLabelHandler(labelService)

	// Register routes
	router.Register(e, cfg, authHandler, noteHandler, labelHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
