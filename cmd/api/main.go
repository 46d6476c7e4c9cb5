package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"docsorter/internal/app"
	"docsorter/internal/config"
	"docsorter/internal/http"
	"docsorter/internal/inbox"
	"docsorter/internal/metrics"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API analyzes documents waiting in an inbox and suggests destination
// folders and filenames learned from earlier sorting decisions.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Document Sorter API
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

const (
	readHeaderTimeout = 10 * time.Second
	serverStopTimeout = 10 * time.Second
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := app.SetupLogging(cfg); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	metrics.Init()

	if err := run(cfg); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
	slog.Info("server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("shutdown incomplete", "error", err)
		}
	}()

	deps := &http.Deps{Sorter: a.Sorter, DB: a.DB}
	if a.Model != nil {
		deps.Model = a.Model
	}
	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           http.NewRouter(deps),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting API server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverStopTimeout)
		defer cancel()
		slog.Info("stopping API server")
		return server.Shutdown(shutdownCtx)
	})

	if a.Inbox != nil {
		g.Go(func() error {
			if n, err := a.Sorter.PreCacheInbox(gctx); err != nil {
				slog.Warn("initial inbox scan failed", "error", err)
			} else {
				slog.Info("inbox queued for analysis", "documents", n)
			}
			return nil
		})
	}

	if a.Inbox != nil && cfg.WatchInbox {
		watcher := inbox.NewWatcher(cfg.InboxPath,
			func(paths []string) {
				if _, err := a.Sorter.PreCache(gctx, paths); err != nil {
					slog.Warn("failed to queue inbox changes", "error", err)
				}
			},
			inbox.WithOnRemove(a.Cache.ClearFor),
		)
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	return g.Wait()
}
