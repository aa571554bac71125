package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poetry-share-backend/internal/config"
	"poetry-share-backend/internal/handlers"
	"poetry-share-backend/internal/middleware"
	"poetry-share-backend/internal/repository"
	"poetry-share-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const migrationFile = "migrations/001_create_tables.sql"

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	if cfg.Auth.JWTSecret == "" {
		log.Fatal().Msg("AUTH_JWT_SECRET is not set")
	}
	if cfg.Razorpay.KeyID == "" || cfg.Razorpay.KeySecret == "" {
		// The payment bridge answers with a configuration error per
		// request; everything else keeps working.
		log.Warn().Msg("Razorpay credentials are not set — payment bridge is disabled")
	}

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	if err := repository.RunMigrations(context.Background(), db, migrationFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize repositories
	poemRepo := repository.NewPoemRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)

	// Initialize services
	poemService := services.NewPoemService(poemRepo, profileRepo)
	profileService := services.NewProfileService(profileRepo)
	visitorService := services.NewVisitorService(visitorRepo)
	paymentService := services.NewPaymentService(cfg.Razorpay)
	uploadService, err := services.NewUploadService(cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload service")
	}
	feedHub := services.NewFeedHub()

	// Initialize handlers
	poemHandler := handlers.NewPoemHandler(poemService, visitorService, feedHub)
	profileHandler := handlers.NewProfileHandler(profileService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	wsHandler := handlers.NewWebSocketHandler(feedHub)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)
	r.Use(middleware.Identity(cfg.Auth.JWTSecret))

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Open routes; identity is optional
		r.Get("/poems", poemHandler.ListPoems)
		r.Post("/poems", poemHandler.CreatePoem)
		r.Get("/visitors", poemHandler.GetVisitorCount)
		r.Post("/visitors", poemHandler.IncrementVisitorCount)
		r.Get("/profile", profileHandler.GetProfile)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Post("/uploads", uploadHandler.GenerateUploadURL)
		})
	})

	// Payment bridge keeps the paths the checkout frontend calls
	r.Post("/create-razorpay-order", paymentHandler.CreateOrder)
	r.Post("/create-razorpay-subscription", paymentHandler.CreateSubscription)

	// WebSocket feed updates
	r.Get("/ws/feed", wsHandler.HandleFeed)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"db unavailable"}`))
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS. The Razorpay checkout flow calls the bridge
// endpoints from browser origins, so every origin is allowed. Preflights
// are answered with 204 and cached for a day.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "86400")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
