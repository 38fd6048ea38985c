//	@title			Filestore API
//	@version		1.0
//	@description	Local-disk file storage service: upload, download, view, inspect, list and delete files.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

//go:generate swag init --dir ../.. --generalInfo cmd/api/main.go --output ../../docs/swagger --outputTypes go

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/radif/filestore/internal/config"
	"github.com/radif/filestore/internal/file"
	"github.com/radif/filestore/internal/health"
	"github.com/radif/filestore/internal/logging"
	appMiddleware "github.com/radif/filestore/internal/middleware"
	"github.com/radif/filestore/internal/storage"

	_ "github.com/radif/filestore/docs/swagger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		// No logger yet: configuration decides which one to build.
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logging.New(cfg.IsProduction())
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store := storage.NewLocalStorage(storage.Config{Root: cfg.UploadPath}, log.Named("storage"))
	if err := store.EnsureRoot(); err != nil {
		log.Fatal("upload directory unavailable", zap.String("path", cfg.UploadPath), zap.Error(err))
	}

	// Wire dependencies: storage → service → handler
	fileSvc := file.NewService(store, cfg.MaxFileSize, log.Named("file"))
	fileHandler := file.NewHandler(fileSvc, cfg.MaxRequestSize, log.Named("http"))

	healthCheck, err := health.New(version, store, log)
	if err != nil {
		log.Fatal("healthcheck init failed", zap.Error(err))
	}

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(log.Named("access")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", healthCheck.HandlerFunc)

	// Swagger UI, available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Server-rendered upload form
	r.Route("/files", fileHandler.FormRoutes)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/files", fileHandler.APIRoutes)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("upload_path", store.Root()),
			zap.String("max_file_size", humanize.IBytes(uint64(cfg.MaxFileSize))),
			zap.String("max_request_size", humanize.IBytes(uint64(cfg.MaxRequestSize))),
		)
		log.Info("swagger UI at http://localhost:" + cfg.Port + "/swagger/")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
