package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lostfound/docs"
	"lostfound/internal/auth"
	"lostfound/internal/blob"
	"lostfound/internal/cache"
	"lostfound/internal/config"
	"lostfound/internal/db"
	"lostfound/internal/handler"
	"lostfound/internal/model"
	"lostfound/internal/repository"
	"lostfound/internal/router"
	"lostfound/internal/service"
)

// @title Lost & Found API
// @version 1.0
// @description Lost-and-found classifieds API with item posting, ownership claims, and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Claim{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	blobClient := blob.New(cfg.BlobEndpoint, cfg.BlobToken)
	if cfg.BlobEndpoint == "" || cfg.BlobToken == "" {
		log.Println("blob store not configured, image uploads degrade to placeholders")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	claimRepo := repository.NewClaimRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	hasher := auth.NewPasswordHasher(cfg.PasswordSecret)
	guard := auth.NewGuard(userRepo, cfg.AdminEmail)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, hasher, cfg.AdminEmail, cfg.AdminPassword)
	itemService := service.NewItemService(itemRepo, claimRepo, blobClient, cacheClient)
	claimService := service.NewClaimService(claimRepo, itemRepo, blobClient, cacheClient)
	adminService := service.NewAdminService(userRepo, itemRepo, claimRepo, blobClient, cacheClient, cfg.AdminEmail)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	itemHandler := handler.NewItemHandler(itemService)
	claimHandler := handler.NewClaimHandler(claimService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Register routes
	router.Register(
		e,
		cfg,
		guard,
		authHandler,
		itemHandler,
		claimHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
