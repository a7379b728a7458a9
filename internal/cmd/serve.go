package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tomasbasham/cli-runtime/templates"

	"github.com/pdfdesk/service/internal/config"
	"github.com/pdfdesk/service/internal/file"
	"github.com/pdfdesk/service/internal/logging"
	"github.com/pdfdesk/service/internal/server"
	"github.com/pdfdesk/service/internal/storage"
)

const shutdownTimeout = 30 * time.Second

var (
	serveLong = templates.LongDesc(`
		Start the HTTP server exposing upload, list, update and delete of PDF
		blobs. Settings come from .env and the environment; flags override them.`)

	serveExample = templates.Examples(`
		# Start with settings from .env and the environment
		pdfblob serve

		# Start on another port against the in-memory store
		pdfblob serve --port 9090 --driver memory`)
)

// ServeOptions defines the options for the `serve` command.
type ServeOptions struct {
	cfg *config.Config

	Port   string
	Driver string
}

func NewServeOptions() *ServeOptions {
	return &ServeOptions{}
}

func NewServeCommand(o *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Start the blob API server",
		Long:    serveLong,
		Example: serveExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return o.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&o.Port, "port", "p", "", "Port to listen on (overrides PORT)")
	cmd.Flags().StringVarP(&o.Driver, "driver", "d", "", "Store driver: vercel, minio or memory (overrides STORE_DRIVER)")

	return cmd
}

func (o *ServeOptions) Complete(cmd *cobra.Command, args []string) error {
	o.cfg = config.Load()
	if o.Port != "" {
		o.cfg.Port = o.Port
	}
	if o.Driver != "" {
		o.cfg.StoreDriver = o.Driver
	}
	return nil
}

func (o *ServeOptions) Validate() error {
	return o.cfg.Validate()
}

func (o *ServeOptions) Run(ctx context.Context) error {
	cfg := o.cfg
	logger := logging.Init(cfg.LogLevel, cfg.IsProduction())
	logConfigNotices(logger, cfg)

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	if !cfg.TokenPresent() {
		logger.Warn().Str("driver", cfg.StoreDriver).Msg("store credential missing; store operations will fail")
	}

	// Wire dependencies: store → service → handler
	svc := newService(cfg, store)
	router := server.NewRouter(file.NewHandler(svc), server.Options{
		Logger:       logger,
		JWTSecret:    cfg.JWTSecret,
		MaxBodyBytes: cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.StoreTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.AppEnv).
			Str("driver", cfg.StoreDriver).
			Bool("auth", cfg.JWTSecret != "").
			Msg("server listening")
		log.Info().Msgf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
