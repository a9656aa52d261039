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

	"revisio-backend/internal/config"
	"revisio-backend/internal/database"
	"revisio-backend/internal/handlers"
	"revisio-backend/internal/middleware"
	"revisio-backend/internal/repository"
	"revisio-backend/internal/router"
	"revisio-backend/internal/services"
	"revisio-backend/internal/session"
	"revisio-backend/internal/websocket"
	"revisio-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Revisio Backend...")

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
	userRepo := repository.NewUserRepo(pool)
	flashcardRepo := repository.NewFlashcardRepo(pool)
	quizRepo := repository.NewQuizRepo(pool)
	diagramRepo := repository.NewDiagramRepo(pool)
	resultRepo := repository.NewResultRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth)

	// ──── Step 5: Start Session Manager ────
	sessionManager := session.NewManager(redisClients.Queue, time.Duration(cfg.SessionIdleMinutes)*time.Minute)
	sessionManager.Start()
	log.Printf("✓ Session manager started (idle TTL %dm)", cfg.SessionIdleMinutes)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardRepo)
	quizHandler := handlers.NewQuizHandler(quizRepo)
	diagramHandler := handlers.NewDiagramHandler(diagramRepo)
	studyHandler := handlers.NewStudyHandler(sessionManager, flashcardRepo, quizRepo, diagramRepo, resultRepo)

	// ──── Step 6: Start Result Worker Pool ────
	workerPool := worker.NewPool(redisClients.Queue, resultRepo, cfg.WorkerCount)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		flashcardHandler,
		quizHandler,
		diagramHandler,
		studyHandler,
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
		sessionManager.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Revisio Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
