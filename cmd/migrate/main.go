package main

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/store-rating-platform/internal/config"
	"github.com/iliyamo/store-rating-platform/internal/database"
)

// Creates the schema. Safe to run on every deploy; all statements are
// IF NOT EXISTS.
func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migration completed")
}
