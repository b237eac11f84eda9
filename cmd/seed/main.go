package main

import (
	"context"
	"flag"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"recicla/internal/cache"
	"recicla/internal/config"
	"recicla/internal/db"
	"recicla/internal/logger"
	"recicla/internal/model"
	"recicla/internal/repository"
	"recicla/internal/service"
)

// demoUser is a development account created by --with-demo-users.
type demoUser struct {
	name     string
	email    string
	password string
	role     model.Role
}

var demoUsers = []demoUser{
	{name: "Ana Souza", email: "ana@example.com", password: "senha123", role: model.RoleCitizen},
	{name: "Mercado Verde Ltda", email: "contato@mercadoverde.example.com", password: "senha123", role: model.RoleCompany},
	{name: "EcoCoop", email: "coleta@ecocoop.example.com", password: "senha123", role: model.RoleCooperative},
}

func main() {
	withDemoUsers := flag.Bool("with-demo-users", false, "also create demo accounts for local development")
	flag.Parse()

	cfg := config.Load()
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Material{}); err != nil {
		logger.Fatal("auto-migrate", zap.Error(err))
	}

	ctx := context.Background()
	materialRepo := repository.NewMaterialRepository(gormDB)
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	materialService := service.NewMaterialService(materialRepo, cacheClient)

	created, err := materialService.SeedMaterials(ctx)
	if err != nil {
		logger.Fatal("seed materials", zap.Error(err))
	}
	logger.Info("seed completed", zap.Int("materials_created", created))

	if !*withDemoUsers {
		return
	}

	userRepo := repository.NewUserRepository(gormDB)
	for _, du := range demoUsers {
		if existing, err := userRepo.FindByEmail(ctx, du.email); err == nil && existing != nil {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(du.password), bcrypt.DefaultCost)
		if err != nil {
			logger.Fatal("hash demo password", zap.Error(err))
		}
		user := &model.User{
			Name:         du.name,
			Email:        du.email,
			PasswordHash: string(hashed),
			Role:         du.role,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Fatal("create demo user", zap.String("email", du.email), zap.Error(err))
		}
		logger.Info("demo user created", zap.String("email", du.email), zap.String("role", string(du.role)))
	}
}
