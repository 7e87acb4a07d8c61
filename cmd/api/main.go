package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gravadigital/eventos-api/internal/config"
	"github.com/gravadigital/eventos-api/internal/logger"
	"github.com/gravadigital/eventos-api/internal/server"
	"github.com/gravadigital/eventos-api/internal/storage"
	"github.com/gravadigital/eventos-api/internal/storage/objectstore"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Log.Level)
	log := logger.Get()

	storageType, err := storage.ValidateStorageType(cfg.Storage.Type)
	if err != nil {
		log.Fatal("Invalid storage configuration", "error", err)
	}

	repos, err := storage.NewFactory(storageType).CreateContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage", "type", storageType, "error", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Error("Failed to close storage", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	archive, err := objectstore.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize certificate archive", "error", err)
	}

	srv, err := server.New(cfg, repos, server.WithArchive(archive))
	if err != nil {
		log.Fatal("Failed to build server", "error", err)
	}
	if err := srv.EnsureAdmin(ctx); err != nil {
		log.Fatal("Admin bootstrap failed", "error", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server stopped", "error", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			log.Error("Graceful shutdown failed", "error", err)
		}
	}

	log.Info("Server exited")
}
