package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/amar19818/askroom/internal/config"
	"github.com/amar19818/askroom/internal/db"
	"github.com/amar19818/askroom/internal/handler"
	"github.com/amar19818/askroom/internal/middleware"
	"github.com/amar19818/askroom/internal/moderation"
	"github.com/amar19818/askroom/internal/repository"
	"github.com/amar19818/askroom/internal/router"
	"github.com/amar19818/askroom/internal/service"
	"github.com/amar19818/askroom/internal/store"
	"github.com/amar19818/askroom/internal/throttle"

	goredis "github.com/redis/go-redis/v9"
)

const geminiEndpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "askroom")

	if cfg.GeminiAPIKey == "" && cfg.Environment != "development" {
		log.Fatal("GEMINI_API_KEY is required outside development")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Throttle and session state lives in Redis so it survives restarts.
	// In development a missing Redis falls back to process memory.
	var state store.StateStore
	var rdb *goredis.Client
	redisStore, err := store.NewRedisStore(cfg.RedisURL)
	if err != nil {
		if cfg.Environment != "development" {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		log.Printf("redis unavailable, using in-memory state: %v", err)
		state = store.NewMemoryStore()
	} else {
		defer redisStore.Close()
		state = redisStore
		rdb = redisStore.Client()
	}

	questionRepo := repository.NewQuestionRepo(pool)
	roomRepo := repository.NewRoomRepo(pool)
	userRepo := repository.NewUserRepo(pool)

	moderator := moderation.NewClient(
		fmt.Sprintf(geminiEndpointFormat, cfg.GeminiModel),
		cfg.GeminiAPIKey,
		cfg.ModerationTimeout,
	)

	countdowns := throttle.NewCountdownRegistry()
	submissionSvc := service.NewSubmissionService(questionRepo, roomRepo, state, moderator, countdowns)
	upvoteSvc := service.NewUpvoteService(questionRepo, state)
	roomSvc := service.NewRoomService(roomRepo)
	authSvc := service.NewAuthService(userRepo, state)

	feedWorker := service.NewFeedWorker(pool, questionRepo)
	go feedWorker.Start(ctx)

	roomWorker := service.NewRoomWorker(roomRepo, time.Minute)
	go roomWorker.Start(ctx)
	defer roomWorker.Stop()

	handler.InitMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "askroom API",
		ServerHeader: "askroom",
	})

	h := &router.Handlers{
		Question: handler.NewQuestionHandler(submissionSvc, upvoteSvc, questionRepo),
		Room:     handler.NewRoomHandler(roomSvc),
		Auth:     handler.NewAuthHandler(authSvc),
		Admin:    handler.NewAdminHandler(questionRepo, submissionSvc),
		Stats:    handler.NewStatsHandler(userRepo),
		Sync:     handler.NewSyncHandler(questionRepo, feedWorker),
		Health:   handler.NewHealthHandler(pool, rdb),
	}
	router.Setup(app, h, authSvc, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("askroom backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
