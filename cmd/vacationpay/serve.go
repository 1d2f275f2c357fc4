package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/warp/vacation-pay/api"
	"github.com/warp/vacation-pay/calendar"
	"github.com/warp/vacation-pay/config"
	"github.com/warp/vacation-pay/store"
	"github.com/warp/vacation-pay/store/memory"
	"github.com/warp/vacation-pay/store/postgres"
	"github.com/warp/vacation-pay/store/sqlite"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != 0 {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides server.port)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	s, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer s.Close()

	sources := calendarSources(cfg.Calendar)
	base, err := api.LoadSources(sources)
	if err != nil {
		return fmt.Errorf("failed to load holiday sources: %w", err)
	}

	handler := api.NewHandler(s, logger, base...)
	if err := handler.LoadHolidays(ctx); err != nil {
		// Serve with base holidays only; the reloader may recover later.
		logger.Warn("Failed to load stored holidays", zap.Error(err))
	}

	reloader := api.NewCalendarReloader(handler, sources, cfg.Calendar.ReloadInterval, logger)
	reloader.Start()
	defer reloader.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handler, api.RouterOptions{CORSOrigins: cfg.Server.CORSOrigins}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("storage", cfg.Storage.Driver),
			zap.Int("holidays", handler.Calendar().Len()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

// openStore opens the holiday store selected by sc.Driver.
func openStore(ctx context.Context, sc config.StorageConfig) (store.HolidayStore, error) {
	switch sc.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		s, err := sqlite.New(sc.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return s, nil
	case "postgres":
		s, err := postgres.Connect(ctx, sc.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}

// calendarSources lists the unstored holiday lists in merge order: built-in
// first, then the overrides file.
func calendarSources(cc config.CalendarConfig) []api.Source {
	var sources []api.Source
	if cc.Builtin {
		sources = append(sources, api.StaticSource(calendar.Russia2026()))
	}
	if cc.OverridesFile != "" {
		sources = append(sources, api.FileSource(cc.OverridesFile))
	}
	return sources
}
