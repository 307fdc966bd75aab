package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/templui/rincon/internal/config"
	"github.com/templui/rincon/internal/db"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/service"
	"github.com/templui/rincon/internal/storage"
)

type App struct {
	Cfg               *config.Config
	DB                *sqlx.DB
	Storage           storage.Storage
	AuthService       *service.AuthService
	TokenService      *service.TokenService
	FileService       *service.FileService
	ProductService    *service.ProductService
	SiteConfigService *service.SiteConfigService
	PageService       *service.PageService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom, cfg.IsDevelopment())

	app, err := Build(cfg, database, fileStorage, emailService)
	if err != nil {
		database.Close()
		return nil, err
	}
	return app, nil
}

// Build wires repositories and services over an open, migrated database.
func Build(cfg *config.Config, database *sqlx.DB, fileStorage storage.Storage, mailer service.Mailer) (*App, error) {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	productRepository := repository.NewProductRepository(database)
	fileRepository := repository.NewFileRepository(database)
	siteConfigRepository := repository.NewSiteConfigRepository(database)

	// Services
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokenService := service.NewTokenService(userRepository, hasher, service.TokenConfig{
		Secret:   cfg.JWTSecret,
		ResetTTL: cfg.TokenPasswordResetExpiry,
		Issuer:   cfg.AppName,
	})
	authService, err := service.NewAuthService(userRepository, hasher, tokenService, mailer, service.AuthConfig{
		SessionTTL:    cfg.JWTExpiry,
		AppURL:        cfg.AppURL,
		AppName:       cfg.AppName,
		SecureCookies: cfg.SecureCookies,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	fileService := service.NewFileService(fileRepository, fileStorage)
	productService := service.NewProductService(productRepository, fileService)
	siteConfigService := service.NewSiteConfigService(siteConfigRepository, cfg.DefaultWhatsAppNumber)
	pageService := service.NewPageService(cfg.ContentPath)

	return &App{
		Cfg:               cfg,
		DB:                database,
		Storage:           fileStorage,
		AuthService:       authService,
		TokenService:      tokenService,
		FileService:       fileService,
		ProductService:    productService,
		SiteConfigService: siteConfigService,
		PageService:       pageService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
