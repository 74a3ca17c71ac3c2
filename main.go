package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/techlib/wifinator/aruba"
	"github.com/techlib/wifinator/cliparse"
	"github.com/techlib/wifinator/db"
	"github.com/techlib/wifinator/manager"
	"github.com/techlib/wifinator/middleware"
	"github.com/techlib/wifinator/router"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Wireless controller
	client, err := aruba.New(aruba.Options{
		Address:   cfg.Aruba.Address,
		Username:  cfg.Aruba.Username,
		Password:  cfg.Aruba.Password,
		VerifyTLS: cfg.Aruba.VerifyTLS,
	})
	if err != nil {
		slog.Error("controller client failed", "error", err)
		os.Exit(1)
	}

	mgr := manager.New(db.NewProfileStore(dbConn), client, cfg.Aruba.ProfilePrefix, cfg.SyncInterval)

	// Create router
	mux := router.NewRouter(dbConn, cfg, router.Deps{
		Sync:       mgr,
		Controller: client,
	})

	// Create server
	server := &http.Server{
		Handler: middleware.CORS(cfg.CORSOrigins, mux),
		Addr:    cfg.Addr(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "addr", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("Synchronizing controller", "interval", cfg.SyncInterval, "prefix", cfg.Aruba.ProfilePrefix)
		return mgr.Run(gctx)
	})

	g.Go(func() error {
		// Wait for Ctrl-C signal or a failed component
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
