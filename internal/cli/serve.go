package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/handlers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Serve() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Long:  `Serve the comparison dashboard, the JSON and SVG API, health and metrics endpoints`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd.Context())
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			app, err := NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			return serve(app)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides SERVER_ADDR")
	return cmd
}

func serve(app *App) error {
	cfg := app.Config
	h := handlers.NewHandler(app.Comparer, app.Provider.GetDisplayName(), cfg.DefaultSeason)
	router := handlers.NewRouter(h, handlers.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     app.Metrics,
		Gatherer:    app.Gatherer,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Str("provider", app.Provider.GetProviderKey()).
			Bool("synthetic", cfg.Provider.Synthetic).
			Msg("shot visualizer listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown failed")
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
	}

	log.Info().Msg("shutdown complete")
	return nil
}
