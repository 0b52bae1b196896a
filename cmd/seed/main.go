package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"lostfound/internal/auth"
	"lostfound/internal/config"
	"lostfound/internal/db"
	"lostfound/internal/model"
	"lostfound/internal/repository"
)

// Demo users and items for local development. Every demo user shares the
// password below.
const demoPassword = "password123"

type seedUser struct {
	username string
	email    string
	items    []seedItem
}

type seedItem struct {
	title       string
	description string
	location    string
}

var demoUsers = []seedUser{
	{
		username: "alice",
		email:    "alice@example.com",
		items: []seedItem{
			{"Blue Backpack", "Navy blue backpack with initials BK on the tag.", "Central Library, 2nd floor"},
			{"Silver Water Bottle", "Dented silver thermos, sticker of a mountain on the side.", "Gym locker room"},
		},
	},
	{
		username: "bob",
		email:    "bob@example.com",
		items: []seedItem{
			{"Black Umbrella", "Automatic black umbrella with a wooden handle.", "Bus stop on 5th Avenue"},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}, &model.Claim{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	hasher := auth.NewPasswordHasher(cfg.PasswordSecret)

	// A stored row for the bootstrap admin is optional (login works without
	// one), but seeding it keeps the admin listing self-consistent.
	if err := seedAdminRow(ctx, userRepo, hasher, cfg); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created := 0
	for _, su := range demoUsers {
		user, err := ensureUser(ctx, userRepo, hasher, su.username, su.email)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", su.email, err)
		}

		for _, si := range su.items {
			items, err := itemRepo.ListByOwner(ctx, user.ID)
			if err != nil {
				log.Fatalf("Failed to list items for %s: %v", su.email, err)
			}
			if hasItem(items, si.title) {
				continue
			}
			item := &model.Item{
				Title:       si.title,
				Description: si.description,
				Location:    si.location,
				PostedByID:  user.ID,
				Status:      model.ItemStatusActive,
			}
			if err := itemRepo.Create(ctx, item); err != nil {
				log.Fatalf("Failed to seed item %q: %v", si.title, err)
			}
			created++
		}
	}

	log.Printf("Seed complete: %d new items", created)
}

func seedAdminRow(ctx context.Context, users repository.UserRepository, hasher *auth.PasswordHasher, cfg *config.Config) error {
	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return users.Create(ctx, &model.User{
		Username:     "admin",
		Email:        cfg.AdminEmail,
		PasswordHash: hasher.Hash(cfg.AdminPassword),
		Role:         model.RoleAdmin,
	})
}

func ensureUser(ctx context.Context, users repository.UserRepository, hasher *auth.PasswordHasher, username, email string) (*model.User, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hasher.Hash(demoPassword),
		Role:         model.RoleUser,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func hasItem(items []model.Item, title string) bool {
	for _, item := range items {
		if item.Title == title {
			return true
		}
	}
	return false
}
