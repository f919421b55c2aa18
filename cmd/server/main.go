package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/movigo/movies-api/internal/config"
	"github.com/movigo/movies-api/internal/database"
	"github.com/movigo/movies-api/internal/handler"
	"github.com/movigo/movies-api/internal/middleware"
	"github.com/movigo/movies-api/internal/queue"
	"github.com/movigo/movies-api/internal/repository"
	"github.com/movigo/movies-api/internal/router"
	"github.com/movigo/movies-api/internal/service"
	"github.com/movigo/movies-api/internal/swapi"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the response cache and rate limiter; both degrade to
	// pass-through when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}

	movieRepo := repository.NewMovieRepo(db)
	userRepo := repository.NewUserRepo(db)

	films := swapi.NewClient(cfg.SwapiBaseURL)
	publisher := queue.NewPublisher(cfg.AMQPURL)

	movies := service.NewMovieService(movieRepo, films, publisher, cfg.SwapiBaseURL)
	users := service.NewUserService(userRepo, cfg.BcryptCost)
	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.AccessTTLMin)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := service.NewSyncScheduler(movies, time.Duration(cfg.SyncInterval)*time.Minute)
	scheduler.Start(ctx)

	if cfg.AMQPURL != "" {
		go queue.StartSyncConsumer(cfg.AMQPURL)
	}

	validate := validator.New()
	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.Register(e, router.Deps{
		Auth:      handler.NewAuthHandler(auth, validate),
		Movies:    handler.NewMovieHandler(movies, validate),
		Users:     handler.NewUserHandler(users, validate),
		JWTSecret: cfg.JWTSecret,
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
