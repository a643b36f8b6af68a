package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/ateliermartel/garage-api/internal/config"
	"github.com/ateliermartel/garage-api/internal/database"
	"github.com/ateliermartel/garage-api/internal/handler"
	"github.com/ateliermartel/garage-api/internal/middleware"
	"github.com/ateliermartel/garage-api/internal/queue"
	"github.com/ateliermartel/garage-api/internal/repository"
	"github.com/ateliermartel/garage-api/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis is optional: a nil client turns the limiter and cache into no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	services := repository.NewServiceRepo(db)
	openings := repository.NewOpeningHourRepo(db)
	comments := repository.NewCommentRepo(db)
	offers := repository.NewOfferRepo(db)

	e := echo.New()
	e.HideBanner = true

	// Every request goes through the identity gate; handlers downstream see
	// either a resolved user or an anonymous request.
	e.Use(middleware.Identity(cfg.JWTSecret, users))

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterPublic(e,
		handler.NewServiceHandler(cfg, services),
		handler.NewOpeningHandler(cfg, openings),
		handler.NewCommentHandler(cfg, comments),
		handler.NewOfferHandler(cfg, offers),
		handler.NewContactHandler(cfg),
		cache, limit)
	router.RegisterAdmin(e,
		handler.NewUserHandler(cfg, users),
		handler.NewServiceHandler(cfg, services),
		handler.NewOpeningHandler(cfg, openings))
	router.RegisterStaff(e,
		handler.NewCommentHandler(cfg, comments),
		handler.NewOfferHandler(cfg, offers))

	// Drains the contact queue and delivers messages by email.
	go queue.StartContactConsumer(cfg.ContactTo)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
