package main

import (
	"context"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/database"
	"github.com/example/storefront/internal/logger"
	"github.com/example/storefront/internal/repository"
	"github.com/example/storefront/internal/routes"
	"github.com/example/storefront/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}

	client := services.NewCatalogClient(services.CatalogClientConfig{
		BaseURL:  cfg.CatalogBaseURL,
		TokenKey: cfg.CatalogTokenKey,
		Timeout:  cfg.CatalogTimeout,
	}, repository.NewTokenStore(db), zlog)

	if cfg.CatalogToken != "" {
		if err := client.SaveToken(context.Background(), cfg.CatalogToken); err != nil {
			zlog.Warn("failed to seed catalog token", zap.Error(err))
		}
	}

	storefront := services.NewStorefront(client, catalog.Range{Min: cfg.QuantityMin, Max: cfg.QuantityMax}, zlog)

	warmCtx, cancel := context.WithTimeout(context.Background(), cfg.CatalogTimeout)
	if _, err := storefront.Load(warmCtx, cfg.DefaultCollections); err != nil {
		zlog.Warn("catalog warm-up failed", zap.Ints("collections", cfg.DefaultCollections), zap.Error(err))
	}
	cancel()

	app := fiber.New(fiber.Config{
		AppName: "Storefront Catalog",
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	routes.Register(app, storefront, client)

	go func() {
		zlog.Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			zlog.Fatal("fiber.Listen error", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				return app.ShutdownWithContext(ctx)
			},
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		},
	)

	exitCode := <-wait
	zlog.Info("server stopped", zap.Int("exit_code", exitCode))
	zlog.Sync()
	os.Exit(exitCode)
}
