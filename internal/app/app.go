package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labcatalog-api/internal/config"
	"labcatalog-api/internal/database"
	"labcatalog-api/internal/event"
	"labcatalog-api/internal/handler"
	"labcatalog-api/internal/middleware"
	"labcatalog-api/internal/password"
	"labcatalog-api/internal/repository"
	"labcatalog-api/internal/router"
	"labcatalog-api/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	adminRepo := repository.NewAdminRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	quoteRepo := repository.NewQuoteRepository(pool)
	slog.Info("database ready")

	authService := service.NewAuthService(adminRepo, password.NewHasher(), cfg.JWTSecret, cfg.JWTTTL)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	bus := event.NewBus()
	dispatcherCtx, dispatcherCancel := context.WithCancel(context.Background())
	if cfg.EmailEnabled() {
		emailService := service.NewEmailService(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom, cfg.EmailTo)
		emailService.StartDispatcher(dispatcherCtx, bus)
	}

	productService := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productService)
	categoryService := service.NewCategoryService(categoryRepo)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	quoteService := service.NewQuoteService(quoteRepo, productRepo, bus)
	quoteHandler := handler.NewQuoteHandler(quoteService)

	var uploadHandler *handler.UploadHandler
	if cfg.UploadsEnabled() {
		s3Client, s3Err := service.NewS3Client(context.Background(), cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretAccessKey, cfg.S3Endpoint)
		if s3Err != nil {
			dispatcherCancel()
			db.Close()
			return nil, fmt.Errorf("failed to initialize object storage: %w", s3Err)
		}
		uploadService := service.NewUploadService(s3Client, cfg.S3Bucket, cfg.S3PublicBaseURL, cfg.MaxUploadSize)
		uploadHandler = handler.NewUploadHandler(uploadService)
	} else {
		slog.Warn("object storage not configured, upload endpoint disabled")
	}

	healthCheck := func(w http.ResponseWriter, r *http.Request) {
		if healthErr := db.Health(r.Context()); healthErr != nil {
			slog.Error("health check failed", "error", healthErr)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("unhealthy"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}

	appRouter := router.New(cfg, authMiddleware, authHandler, productHandler, categoryHandler, quoteHandler, uploadHandler, healthCheck)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			dispatcherCancel,
			db.Close,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
