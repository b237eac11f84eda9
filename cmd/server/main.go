package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"recicla/internal/auth"
	"recicla/internal/cache"
	"recicla/internal/config"
	"recicla/internal/db"
	"recicla/internal/handler"
	"recicla/internal/logger"
	"recicla/internal/model"
	"recicla/internal/repository"
	"recicla/internal/router"
	"recicla/internal/service"
)

// @title Recicla API
// @version 1.0
// @description Waste-collection scheduling API: citizens and companies request pickups of recyclable materials, cooperatives claim and fulfill them.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Sync()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Material{},
		&model.Collection{},
		&model.CollectionMaterial{},
	); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	materialRepo := repository.NewMaterialRepository(gormDB)
	collectionRepo := repository.NewCollectionRepository(gormDB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	materialService := service.NewMaterialService(materialRepo, cacheClient)
	collectionService := service.NewCollectionService(collectionRepo, materialRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	collectionHandler := handler.NewCollectionHandler(collectionService, materialService)
	materialHandler := handler.NewMaterialHandler(materialService)

	e := echo.New()
	e.Use(middleware.RequestID())

	router.Register(e, jwtService, authHandler, userHandler, collectionHandler, materialHandler)

	addr := ":" + cfg.ServerPort
	logger.Info("starting server", zap.String("addr", addr), zap.String("env", cfg.Environment))
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server start", zap.Error(err))
	}
}
