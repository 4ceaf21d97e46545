package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Ananya-Krishnappa/fundoo-notes/internal/auth"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/cache"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/config"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/db"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/logger"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/mail"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/model"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/repository"
	"github.com/Ananya-Krishnappa/fundoo-notes/internal/service"
)

// Seeds a demo user with a handful of notes and labels for local development.
func main() {
	logger.Init()
	log.Info().Msg("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Note{}, &model.Label{}); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	cacheClient := cache.NewFromClient(redisClient)

	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)
	labelRepo := repository.NewLabelRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	resetTokenManager := auth.NewResetTokenManager(auth.NewResetTokenStore(redisClient))

	authService := service.NewAuthService(userRepo, resetTokenManager, jwtService, mail.NoopMailer{}, cfg.ClientURL)
	noteService := service.NewNoteService(noteRepo, cacheClient)
	labelService := service.NewLabelService(labelRepo, noteRepo, cacheClient)

	ctx := context.Background()

	user, err := authService.Register(ctx, "Demo", "User", "demo@fundoo.local", "(000) 000-0000", "password123")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed demo user")
	}
	log.Info().Str("user_id", user.ID.String()).Msg("seeded demo user")

	seedNotes := []struct {
		title       string
		description string
		isPinned    bool
		labels      []string
	}{
		{"Groceries", "Milk, eggs, bread", true, []string{"errands"}},
		{"Reading list", "The Go Programming Language", false, []string{"books", "someday"}},
		{"Meeting notes", "Weekly sync takeaways", false, nil},
	}

	for _, sn := range seedNotes {
		note, err := noteService.Create(ctx, user.ID, sn.title, sn.description, sn.isPinned)
		if err != nil {
			log.Fatal().Err(err).Str("title", sn.title).Msg("failed to seed note")
		}
		for _, name := range sn.labels {
			if _, err := labelService.Create(ctx, note.ID, name); err != nil {
				log.Fatal().Err(err).Str("label", name).Msg("failed to seed label")
			}
		}
		log.Info().Str("note_id", note.ID.String()).Str("title", sn.title).Msg("seeded note")
	}

	log.Info().Msg("seed completed")
}
