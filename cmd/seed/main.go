package main

// Seeds demo accounts and fixtures for local development: one admin, one
// store owner with a store, one regular user who has rated it. Inserts are
// keyed by email / owner, so rerunning the command is a no-op.

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/iliyamo/store-rating-platform/internal/config"
	"github.com/iliyamo/store-rating-platform/internal/database"
	"github.com/iliyamo/store-rating-platform/internal/model"
	"github.com/iliyamo/store-rating-platform/internal/repository"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	stores := repository.NewStoreRepo(db)
	ratings := repository.NewRatingRepo(db)

	ensureUser(ctx, users, "System Administrator Admin", "admin@example.com",
		"HQ, Admin Street, City, Country", "Admin@123", model.RoleAdmin, cfg.BcryptCost)
	owner := ensureUser(ctx, users, "Default Store Owner Name", "owner@example.com",
		"Owner Address, City, Country", "Owner@123", model.RoleStoreOwner, cfg.BcryptCost)
	user := ensureUser(ctx, users, "Normal Platform User One", "user@example.com",
		"42 User Lane, City, Country", "User@1234", model.RoleUser, cfg.BcryptCost)

	store, err := stores.FindByOwner(ctx, owner.ID)
	if err == repository.ErrNoStoreForOwner {
		store, err = stores.Create(ctx, "Green Grocery", "green@store.com", "12 Market Road, Springfield", owner.ID)
	}
	if err != nil {
		log.Fatalf("seed store: %v", err)
	}

	if _, err := ratings.Upsert(ctx, user.ID, store.ID, 4); err != nil {
		log.Fatalf("seed rating: %v", err)
	}

	log.Println("seed complete")
}

// ensureUser returns the existing account for the email or creates it.
func ensureUser(ctx context.Context, users *repository.UserRepo, name, email, address, password, role string, cost int) model.User {
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u
	}
	if err != sql.ErrNoRows {
		log.Fatalf("seed user %s: %v", email, err)
	}
	u, err = users.Create(ctx, name, email, address, password, role, cost)
	if err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	return u
}
