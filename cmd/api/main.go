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

	"github.com/ecostock/ecostock-api/internal/client"
	"github.com/ecostock/ecostock-api/internal/config"
	"github.com/ecostock/ecostock-api/internal/console"
	"github.com/ecostock/ecostock-api/internal/database"
	"github.com/ecostock/ecostock-api/internal/http/handler"
	"github.com/ecostock/ecostock-api/internal/http/middleware"
	"github.com/ecostock/ecostock-api/internal/http/router"
	"github.com/ecostock/ecostock-api/internal/jobs"
	"github.com/ecostock/ecostock-api/internal/logger"
	"github.com/ecostock/ecostock-api/internal/repository"
	"github.com/ecostock/ecostock-api/internal/service"
	"go.uber.org/zap"
)

// @title EcoStock API
// @version 1.0
// @description Inventory and exchange tracking between partner companies
// @BasePath /api

const orphanReportTimeout = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", zap.Error(err))
		return err
	}
	if cfg.Console.EphemeralSecret {
		log.Warn("SESSION_SECRET not set, console sessions use a per-process secret and end on restart")
	}

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database with retry logic
	db, err := database.NewDatabase(ctx, &cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, "postgres"); err != nil {
			return err
		}
		log.Info("Database migrations applied")
	}

	// Initialize repositories
	categoriaRepo := repository.NewCategoriaRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)
	trocaRepo := repository.NewTrocaRepository(db)
	comunicacaoRepo := repository.NewComunicacaoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)

	// Initialize services
	categoriaService := service.NewCategoriaService(db, categoriaRepo, empresaRepo, log)
	empresaService := service.NewEmpresaService(empresaRepo, log)
	trocaService := service.NewTrocaService(trocaRepo, log)
	comunicacaoService := service.NewComunicacaoService(comunicacaoRepo, empresaRepo, trocaRepo, log)
	authService := service.NewAuthService(usuarioRepo, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db, log)
	categoriaHandler := handler.NewCategoriaHandler(categoriaService, log)
	empresaHandler := handler.NewEmpresaHandler(empresaService, log)
	trocaHandler := handler.NewTrocaHandler(trocaService, log)
	comunicacaoHandler := handler.NewComunicacaoHandler(comunicacaoService, log)
	authHandler := handler.NewAuthHandler(authService, log)

	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// The admin console calls the REST API over HTTP, by default on loopback
	var adminConsole *console.Console
	if cfg.Console.Enabled {
		baseURL := cfg.Console.APIBaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://127.0.0.1:%d", cfg.App.Port)
		}
		sessions := console.NewSessions(
			cfg.Console.SessionSecret,
			cfg.Console.SessionTTLDuration(),
			cfg.App.IsProduction(),
		)
		adminConsole, err = console.New(client.New(baseURL, cfg.Console.RequestTimeoutDuration()), sessions, log.Named("console"))
		if err != nil {
			return fmt.Errorf("failed to initialize console: %w", err)
		}
		log.Info("Admin console enabled", zap.String("api_base_url", baseURL))
	}

	rt := router.NewRouter(
		cfg,
		log,
		rateLimiter,
		healthHandler,
		categoriaHandler,
		empresaHandler,
		trocaHandler,
		comunicacaoHandler,
		authHandler,
		adminConsole,
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.OrphanReportEnabled {
		scheduler = jobs.NewScheduler(log.Named("jobs"))
		if err := jobs.RegisterOrphanReportJob(scheduler, empresaService, log.Named("jobs"), cfg.Jobs.OrphanReportCron, orphanReportTimeout); err != nil {
			log.Error("Failed to register orphan report job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
			log.Info("Scheduler started with orphan report job",
				zap.String("cron_expr", cfg.Jobs.OrphanReportCron),
			)
		}
	} else {
		log.Info("Orphan report job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
