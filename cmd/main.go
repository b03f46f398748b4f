package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-list/internal/gallery"
	"employee-list/internal/handler"
	mid "employee-list/internal/middleware"
	"employee-list/internal/repository"
	"employee-list/internal/service"
	"employee-list/internal/view"
	"employee-list/pkg/config"
	"employee-list/pkg/database"
	"employee-list/pkg/jwtutil"
	"employee-list/pkg/logger"
	"employee-list/pkg/mailer"
	"employee-list/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting employee-list", appConfig.LogConfig()...)

	// Initialize database
	db, err := database.Initialize(appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if len(os.Args) > 1 && os.Args[1] == "purge" {
		purge(db, appConfig, log)
		return
	}

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	store := repository.NewStore(db)

	accounts := service.NewAccountService(store, log)
	if err := accounts.EnsureAdmin(ctx, appConfig.Admin.Username, appConfig.Admin.Password, appConfig.Admin.Email); err != nil {
		log.Fatal("Failed to create admin account", zap.Error(err))
	}

	images, err := gallery.NewStore(appConfig.Gallery, log)
	if err != nil {
		log.Fatal("Failed to prepare gallery directory", zap.Error(err))
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	jwtUtil := jwtutil.NewJWTUtil(&appConfig.JWT)
	smtpMailer := mailer.NewSMTPMailer(appConfig.SMTP)

	employees := service.NewEmployeeService(store, images.PlaceholderURL(), log)
	catalog := service.NewCatalogService(store, log)
	settings := service.NewSettingsService(store, log)
	pins := service.NewPinService(store, smtpMailer, log)
	self := service.NewSelfService(store, employees, pins, images,
		appConfig.SelfService.RegistrationCode, appConfig.SelfService.AccountRole, log)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(bodyLimit(appConfig.Gallery.MaxUploadBytes)))
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	handler.RegisterRoutes(e, handler.Handlers{
		Settings:    handler.NewSettingsHandler(settings),
		Employees:   handler.NewEmployeeHandler(employees),
		Catalog:     handler.NewCatalogHandler(catalog),
		Gallery:     handler.NewGalleryHandler(images),
		Pins:        handler.NewPinHandler(pins),
		SelfService: handler.NewSelfServiceHandler(self, settings),
		Directory:   handler.NewDirectoryHandler(employees),
		Auth:        handler.NewAuthHandler(accounts, jwtUtil),
		Health: handler.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db, 2*time.Second)
		}),
	}, jwtUtil, images.Dir(), images.URLPrefix())

	// Start server
	port := appConfig.Server.Port
	go func() {
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}

// purge drops every table and removes the uploaded photos
func purge(db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	if err := database.Purge(context.Background(), db); err != nil {
		log.Fatal("Failed to drop tables", zap.Error(err))
	}
	if err := os.RemoveAll(cfg.Gallery.Dir); err != nil {
		log.Fatal("Failed to remove gallery directory", zap.Error(err))
	}
	log.Info("Purged database and gallery", zap.String("gallery_dir", cfg.Gallery.Dir))
}

// bodyLimit leaves room for several photos plus the form fields of one request
func bodyLimit(maxUploadBytes int64) string {
	return fmt.Sprintf("%dK", (4*maxUploadBytes+1<<20)/1024)
}
