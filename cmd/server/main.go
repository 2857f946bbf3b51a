package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/streetlights/internal/config"
	"github.com/smartcity/streetlights/internal/delivery/http"
	"github.com/smartcity/streetlights/internal/domain"
	"github.com/smartcity/streetlights/internal/loader"
	"github.com/smartcity/streetlights/internal/observability"
	"github.com/smartcity/streetlights/internal/repository/postgres"
	"github.com/smartcity/streetlights/internal/service"
)

func main() {
	// Configuration
	cfg := config.Load()

	// Asset source: PostgreSQL when configured and reachable, the CSV export otherwise
	var source domain.AssetSource = loader.NewCSVSource(cfg.CSVPath)
	if cfg.UsePostgres() {
		pool, err := connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
			log.Printf("Falling back to %s", cfg.CSVPath)
		} else {
			defer pool.Close()
			log.Println("Connected to PostgreSQL")
			source = postgres.NewPostgresSource(pool, cfg.LightsTable)
		}
	}

	// Dependency Injection: Services
	metrics := observability.NewMetrics()
	dataset := service.NewDatasetService(source, time.Now)
	dataset.SetObserver(metrics)
	dashboardSvc := service.NewDashboardService(dataset, cfg.MaintenanceCutoff, cfg.Center)

	// Warm the cache; without a table there is nothing to serve
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := dataset.Table(ctx); err != nil {
		cancel()
		log.Fatalf("Could not load dataset: %v", err)
	}
	cancel()

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Streetlights Dashboard v1.0",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(metrics.Middleware())

	// Routes
	http.SetupRoutes(app, dashboardSvc, metrics)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s (%s, source %s)", cfg.Port, cfg.Env, source.Name())
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

// connect opens the pool and checks the database answers
func connect(url string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
