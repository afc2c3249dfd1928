package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/audience-insights/internal/archive"
	"github.com/JonMunkholm/audience-insights/internal/audit"
	"github.com/JonMunkholm/audience-insights/internal/config"
	"github.com/JonMunkholm/audience-insights/internal/core"
	"github.com/JonMunkholm/audience-insights/internal/logging"
	"github.com/JonMunkholm/audience-insights/internal/web"
)

func main() {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if cfg.App.Debug {
		level = "debug"
	}
	logging.Setup(level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"audit_driver", cfg.Audit.Driver,
		"archive_backend", cfg.Archive.Backend,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	ctx := context.Background()

	recorder, closeRecorder, err := openRecorder(ctx, cfg.Audit)
	if err != nil {
		slog.Error("failed to open audit store", "driver", cfg.Audit.Driver, "error", err)
		os.Exit(1)
	}
	defer closeRecorder()

	archiver, err := openArchiver(ctx, cfg.Archive)
	if err != nil {
		slog.Error("failed to open archive", "backend", cfg.Archive.Backend, "error", err)
		os.Exit(1)
	}

	service := core.NewService(core.Options{
		MaxFileSize:       cfg.Upload.MaxFileSize,
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		MaxConcurrent:     cfg.Upload.MaxConcurrent,
		MaxWait:           cfg.Upload.MaxWaitTime,
		Archiver:          archiver,
		Recorder:          recorder,
	})

	server := web.NewServer(cfg, service)

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if active := service.UploadLimiterStatus().Active; active > 0 {
			slog.Info("waiting for uploads to complete", "active", active)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}

// openRecorder builds the audit recorder for cfg.Driver. The returned
// close function is always safe to call.
func openRecorder(ctx context.Context, cfg config.AuditConfig) (audit.Recorder, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case config.AuditMemory:
		return audit.NewMemory(), noop, nil

	case config.AuditPostgres:
		poolConfig, err := pgxpool.ParseConfig(cfg.URL)
		if err != nil {
			return nil, noop, fmt.Errorf("parse database URL: %w", err)
		}
		poolConfig.MaxConns = int32(cfg.MaxConns)
		poolConfig.MinConns = int32(cfg.MinConns)
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, noop, fmt.Errorf("connect: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("ping: %w", err)
		}

		pg := audit.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		slog.Info("audit trail enabled", "driver", cfg.Driver)
		return pg, pool.Close, nil

	case config.AuditMySQL:
		my, err := audit.OpenMySQL(ctx, cfg.URL, cfg.MaxConns, cfg.MaxConnLifetime)
		if err != nil {
			return nil, noop, err
		}
		if err := my.EnsureSchema(ctx); err != nil {
			my.Close()
			return nil, noop, err
		}
		slog.Info("audit trail enabled", "driver", cfg.Driver)
		return my, func() { my.Close() }, nil
	}

	return audit.Nop{}, noop, nil
}

// openArchiver builds the processed-file archive for cfg.Backend.
func openArchiver(ctx context.Context, cfg config.ArchiveConfig) (archive.Archiver, error) {
	switch cfg.Backend {
	case config.ArchiveLocal:
		return archive.NewLocalDir(cfg.Dir)

	case config.ArchiveMinio:
		return archive.NewMinio(ctx, archive.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			Region:    cfg.MinioRegion,
			Bucket:    cfg.MinioBucket,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
		})
	}

	return archive.Nop{}, nil
}
