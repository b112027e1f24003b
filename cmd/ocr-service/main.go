package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/audit"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/handler"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/ocr"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/processor"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/service"
	"github.com/omarayman-74/egyptian-id-ocr/internal/idcard/storage"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/config"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/database"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/httputil"
	"github.com/omarayman-74/egyptian-id-ocr/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("ocr-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("ocr-service", cfg.Server.Environment)
	log.Info().Msg("starting ID OCR Service")

	// Optional audit database
	var auditRepo *audit.Repository
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		auditRepo = audit.NewRepository(db.DB, log)
	}

	// OCR engines
	general := ocr.NewTesseract(cfg.OCR.TesseractLang)
	deep := ocr.NewDeepReader(cfg.OCR.DeepOCRURL, cfg.OCR.RequestTimeout)

	var regions ocr.RegionProvider = ocr.WholeImage{}
	if cfg.OCR.CropServiceURL != "" {
		regions = ocr.NewCropClient(cfg.OCR.CropServiceURL, cfg.OCR.RequestTimeout)
	}

	// Processing pipeline
	proc := processor.NewIDCard(general, deep, regions, log)
	store := storage.NewTempStorage(cfg.Jobs.TTL)
	svc := service.New(store, proc, auditRepo, log)
	idHandler := handler.NewHandler(svc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		health := map[string]interface{}{
			"status":  "healthy",
			"service": "ocr-service",
		}
		if db != nil {
			health["database"] = db.Health(req.Context())
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		idHandler.RegisterRoutes(r)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
