package main

import (
	"log"
	"net/http"

	_ "starblog/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"starblog/internal/auth"
	"starblog/internal/cache"
	"starblog/internal/config"
	"starblog/internal/db"
	"starblog/internal/handler"
	"starblog/internal/model"
	"starblog/internal/repository"
	"starblog/internal/router"
	"starblog/internal/service"
)

// @title Starblog API
// @version 1.0
// @description Blog API with account registration, JWT authentication and post likes.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Like{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	likeRepo := repository.NewLikeRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	emailVerifier := service.NewEmailVerifier(cfg.EmailCheckURL, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, emailVerifier)
	postService := service.NewPostService(postRepo, likeRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)

	// Register routes
	router.Register(e, cfg, authHandler, postHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
