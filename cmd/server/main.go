package main // Entry point package

import (
	"log" // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/store-rating-platform/internal/config"
	"github.com/iliyamo/store-rating-platform/internal/database"
	"github.com/iliyamo/store-rating-platform/internal/handler"
	"github.com/iliyamo/store-rating-platform/internal/queue"
	"github.com/iliyamo/store-rating-platform/internal/repository"
	"github.com/iliyamo/store-rating-platform/internal/router"
)

func main() {
	cfg := config.Load() // Load environment config (.env supported)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache disabled")
	}

	users := repository.NewUserRepo(db)
	stores := repository.NewStoreRepo(db)
	ratings := repository.NewRatingRepo(db)

	h := router.Handlers{
		Auth:   handler.NewAuthHandler(cfg, users),
		Store:  handler.NewStoreHandler(stores),
		Rating: handler.NewRatingHandler(stores, ratings),
		Owner:  handler.NewOwnerHandler(stores, ratings),
		Admin:  handler.NewAdminHandler(cfg, users, stores, ratings),
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, h, cfg, rdb)

	// Consume rating.submitted events in the background; the loop reconnects
	// on its own and never takes the server down.
	go func() {
		if err := queue.StartRatingConsumer(); err != nil {
			log.Printf("rating consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
