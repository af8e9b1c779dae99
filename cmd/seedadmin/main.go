package main

import (
	"context"
	"errors"
	"log"

	"attendly/internal/config"
	"attendly/internal/principal"
	"attendly/internal/store"
)

// Seeds the initial admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
// Safe to run repeatedly: an existing admin is left untouched.
func main() {
	cfg := config.Load()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	repo := principal.NewRepository(db.Client)

	if _, err := repo.AdminByEmail(ctx, cfg.AdminEmail); err == nil {
		log.Println("Admin already exists")
		return
	} else if !errors.Is(err, principal.ErrNotFound) {
		log.Fatalf("admin lookup failed: %v", err)
	}

	admin, err := principal.NewAdmin("Admin", cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	if _, err := repo.CreateAdmin(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Println("Admin seeded successfully")
}
