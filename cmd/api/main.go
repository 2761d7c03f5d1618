package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/sapataria/internal/config"
	"github.com/MrJamesThe3rd/sapataria/internal/export"
	sapatariaHttp "github.com/MrJamesThe3rd/sapataria/internal/http"
	"github.com/MrJamesThe3rd/sapataria/internal/http/events"
	exportHandler "github.com/MrJamesThe3rd/sapataria/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/sapataria/internal/http/importcsv"
	productHandler "github.com/MrJamesThe3rd/sapataria/internal/http/product"
	reportHandler "github.com/MrJamesThe3rd/sapataria/internal/http/report"
	settingsHandler "github.com/MrJamesThe3rd/sapataria/internal/http/settings"
	"github.com/MrJamesThe3rd/sapataria/internal/importer"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/storage/file"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := file.New(cfg.Storage.DataDir)
	if err != nil {
		slog.Error("failed to open data dir", "dir", cfg.Storage.DataDir, "error", err)
		os.Exit(1)
	}

	store, err := inventory.NewStore(ctx, repo)
	if err != nil {
		slog.Error("failed to load inventory", "error", err)
		os.Exit(1)
	}

	var (
		importService = importer.NewService(store)
		exportService = export.NewService(store)
	)

	var (
		productH  = productHandler.NewHandler(store)
		reportH   = reportHandler.NewHandler(store)
		settingsH = settingsHandler.NewHandler(store)
		importH   = importHandler.NewHandler(importService)
		exportH   = exportHandler.NewHandler(exportService)
		eventsH   = events.NewHandler(store, cfg.Server.CORSOrigins)
	)

	router := sapatariaHttp.New(cfg.Server.CORSOrigins, productH, reportH, settingsH, importH, exportH, eventsH)

	// No WriteTimeout: websocket connections stay open for as long as the peer does.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr, "data_dir", cfg.Storage.DataDir)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
