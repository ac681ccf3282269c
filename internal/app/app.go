package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/devkit/internal/clipboard"
	"github.com/MrSnakeDoc/devkit/internal/config"
	"github.com/MrSnakeDoc/devkit/internal/httpserver"
	"github.com/MrSnakeDoc/devkit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/devkit/internal/kv"
	"github.com/MrSnakeDoc/devkit/internal/logger"
	"github.com/MrSnakeDoc/devkit/internal/scheduler"
	"github.com/MrSnakeDoc/devkit/internal/store"
	"github.com/MrSnakeDoc/devkit/internal/toolkit"
	"github.com/MrSnakeDoc/devkit/internal/utils"
	"github.com/MrSnakeDoc/devkit/internal/version"
)

// App owns the store, the panels and, when serving, the HTTP server.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	store   kv.Store
	toolkit *toolkit.Toolkit
}

// New opens the configured store and builds the panels on top of it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	clip, err := clipboard.New(cfg.Clipboard)
	if err != nil {
		return nil, err
	}

	// Fail fast if the store is unavailable
	kvStore, err := store.Open(ctx, cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}

	tk := toolkit.New(toolkit.Options{
		Store:     kvStore,
		Clipboard: clip,
		Logger:    loggerClient,
	})

	return &App{
		cfg:     cfg,
		logger:  loggerClient,
		store:   kvStore,
		toolkit: tk,
	}, nil
}

func (a *App) Toolkit() *toolkit.Toolkit { return a.toolkit }

func (a *App) Logger() logger.Logger { return a.logger }

// Close releases the store and flushes the logger.
func (a *App) Close() {
	utils.MustClose(a.store, a.store.Backend()+" store", a.logger)
	_ = a.logger.Sync()
}

// Serve runs the HTTP server and the optional backup job until SIGINT
// or SIGTERM.
func (a *App) Serve() error {
	a.logger.Infof("🚀 Starting devkit v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Hydrate every panel up front; a corrupt panel is reported and the
	// others keep working.
	if err := a.toolkit.Load(ctx); err != nil {
		a.logger.Warn("some panels failed to load", logger.Error(err))
	}

	var backup *scheduler.Backup
	var backupTrigger chan struct{}
	if a.cfg.BackupFile != "" {
		backupTrigger = make(chan struct{})
		backup = scheduler.NewBackup(a.toolkit, a.cfg.BackupFile, a.logger, a.cfg.BackupInterval, backupTrigger)
		if err := backup.Start(ctx); err != nil {
			return fmt.Errorf("failed to start backup: %w", err)
		}
		a.logger.Info("backup started",
			logger.String("file", a.cfg.BackupFile),
			logger.Duration("interval", a.cfg.BackupInterval))
	} else {
		a.logger.Info("backup file not configured, periodic backup disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          a.logger,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    a.cfg.AllowedHosts,
		AllowedCIDRS:    a.cfg.AllowedCIDRS,
		TrustProxy:      a.cfg.TrustProxy,
		CORSOrigins:     a.cfg.CORSOrigins,
		RateLimitBurst:  a.cfg.RateLimitBurst,
		RateLimitPerMin: a.cfg.RateLimitPerMin,
		Store:           a.store,
		Toolkit:         a.toolkit,
		BackupFile:      a.cfg.BackupFile,
		BackupTrigger:   backupTrigger,
	}
	server := httpserver.New(a.cfg, a.logger, d)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if backup != nil {
		backup.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ devkit stopped cleanly")
	return nil
}
