package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/songlingo/songlingo/internal/app"
	"github.com/songlingo/songlingo/internal/auth"
	"github.com/songlingo/songlingo/internal/bootstrap"
	"github.com/songlingo/songlingo/internal/config"
	"github.com/songlingo/songlingo/internal/database"
	"github.com/songlingo/songlingo/internal/server"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "songlingo-server",
		Short:         "Songlingo pronunciation exercise HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	if err := setupLogger(cfg.Log.Level); err != nil {
		return fmt.Errorf("setupLogger() > %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET environment variable is required")
	}

	application := bootstrap.New()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	application.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})

	services, err := app.NewServices(cfg, db)
	if err != nil {
		return fmt.Errorf("app.NewServices() > %w", err)
	}
	application.AddShutdownHook(func(context.Context) error {
		return services.Close()
	})

	handler, err := server.NewHandler(server.Config{
		AllowedOrigins: cfg.Server.CORS.AllowedOrigins,
		MaxAudioBytes:  cfg.Provider.MaxAudioBytes,
	}, services.Pipeline, services.Transcription, auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience), db)
	if err != nil {
		return fmt.Errorf("server.NewHandler() > %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(handler.Routes(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	application.AddShutdownHook(srv.Shutdown)

	return application.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr, "tls", cfg.Server.TLSCertFile != "")
		var err error
		if cfg.Server.TLSCertFile != "" {
			err = srv.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func setupLogger(level string) error {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	return nil
}
