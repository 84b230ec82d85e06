package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slidedeck-backend/internal/config"
	"slidedeck-backend/internal/database"
	"slidedeck-backend/internal/handlers"
	"slidedeck-backend/internal/repository"
	"slidedeck-backend/internal/router"
	"slidedeck-backend/internal/services"
	"slidedeck-backend/internal/websocket"
	"slidedeck-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting SlideDeck Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	presRepo := repository.NewPresentationRepo(pool)
	slideRepo := repository.NewSlideRepo(pool)
	exportRepo := repository.NewExportRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)

	// ──── Initialize Services ────
	lifecycle := services.NewLifecycleService(presRepo)
	fileInspect := services.NewFileInspectService()
	agentGateway := services.NewAgentGateway(presRepo, lifecycle, redisClients.PubSub)
	exportService := services.NewExportService(
		presRepo, slideRepo, exportRepo,
		time.Duration(cfg.WebhookTimeoutSeconds)*time.Second,
	)

	// ──── Initialize Handlers ────
	presentationHandler := handlers.NewPresentationHandler(presRepo, slideRepo, lifecycle, fileInspect, cfg.StoragePath)
	slideHandler := handlers.NewSlideHandler(slideRepo)
	editorHandler := handlers.NewEditorHandler(slideRepo, lifecycle)
	agentHandler := handlers.NewAgentHandler(agentGateway)
	exportHandler := handlers.NewExportHandler(exportService, agentGateway)
	playerHandler := handlers.NewPlayerHandler(slideRepo, lifecycle, redisClients.Queue)

	// ──── Step 5: Start Progress Worker Pool ────
	workerPool := worker.NewPool(redisClients.Queue, progressRepo, cfg.ProgressWorkers)
	workerPool.Start()
	log.Printf("✓ Progress worker pool started (%d goroutines)", cfg.ProgressWorkers)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		presentationHandler,
		slideHandler,
		editorHandler,
		agentHandler,
		exportHandler,
		playerHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ SlideDeck Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
