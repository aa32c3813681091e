package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"key-dance/pkg/acrcloud"
	"key-dance/pkg/api"
	"key-dance/pkg/config"
	"key-dance/pkg/metrics"
	"key-dance/pkg/pipeline"
	"key-dance/pkg/recognition"
	"key-dance/pkg/staff"
	"key-dance/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid provider configuration", zap.Error(err))
	}

	collector := metrics.NewCollector()

	client, err := acrcloud.NewClient(cfg.Credentials(),
		acrcloud.WithTimeout(cfg.Provider.Timeout),
		acrcloud.WithLogger(logger.Named("acrcloud")),
		acrcloud.WithLatencyObserver(collector.ObserveProviderLatency),
	)
	if err != nil {
		logger.Fatal("failed to create provider client", zap.Error(err))
	}

	// Initialize storage
	diskStore, err := storage.NewDiskStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal("failed to initialize disk storage", zap.Error(err))
	}
	defer diskStore.Close()
	catalog := storage.NewCatalog(storage.NewMemoryStore(), diskStore, logger.Named("catalog"))

	service := recognition.NewService(client,
		recognition.WithServiceLogger(logger.Named("recognition")),
		recognition.WithObserver(collector.ObserveRecognition),
		recognition.WithObserver(catalog.Observe),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipelineManager := pipeline.NewManager(cfg.Pipeline, service, logger.Named("pipeline"))
	if err := pipelineManager.Start(ctx); err != nil {
		logger.Fatal("failed to start pipeline", zap.Error(err))
	}
	defer pipelineManager.Stop()

	handlers := api.NewHandlers(service, catalog, staff.NewGenerator(), pipelineManager, logger.Named("api"))

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewRouter(handlers, collector.Handler(), cfg.StaticDir, logger.Named("http")),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("music recognition server starting",
			zap.String("address", cfg.Server.Address),
			zap.String("provider_host", cfg.Provider.Host),
			zap.Duration("provider_timeout", cfg.Provider.Timeout))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return zcfg.Build()
}
