package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stantonwjones/resourceful/internal/adapters/clients"
	"github.com/stantonwjones/resourceful/internal/adapters/clients/acl"
	"github.com/stantonwjones/resourceful/internal/app"
	"github.com/stantonwjones/resourceful/internal/platform/config"
	"github.com/stantonwjones/resourceful/internal/platform/logging"
	"github.com/stantonwjones/resourceful/internal/platform/telemetry"
)

var (
	typeName   string
	attributes []string
)

var rootCmd = &cobra.Command{
	Use:           "resourcectl",
	Short:         "Manage REST resources through their persistence lifecycle",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&typeName, "type", "resource",
		"resource type name used for payload roots and error matching")
	rootCmd.PersistentFlags().StringSliceVar(&attributes, "attrs", nil,
		"known attribute names for the resource type (comma separated)")
}

// env holds the wired application stack for a command invocation.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	service  *app.ResourceService
	shutdown func(context.Context)
}

// buildEnv loads configuration and wires the client stack.
// Mirrors the startup sequence of a long-running service: config first,
// fail fast on validation, then logging, telemetry, and the HTTP client.
func buildEnv(ctx context.Context) (*env, error) {
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	var authFunc func(*http.Request)
	if cfg.API.Key != "" {
		key := cfg.API.Key
		authFunc = func(r *http.Request) {
			r.SetBasicAuth(key, "")
		}
	}

	httpClient, err := clients.New(&clients.Config{
		BaseURL:    cfg.API.BaseURL,
		ClientName: cfg.API.Name,
		Version:    Version,
		Timeout:    cfg.Client.Timeout,
		Retry:      cfg.Client.Retry,
		Circuit:    cfg.Client.CircuitBreaker,
		Transport:  cfg.Client.Transport,
		AuthFunc:   authFunc,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	adapter := acl.NewResourceAdapter(acl.ResourceAdapterConfig{
		Client: httpClient,
		Format: acl.Format(cfg.API.Format),
		Logger: logger,
	})

	service := app.NewResourceService(app.ResourceServiceConfig{
		Resources: adapter,
		Logger:    logger,
	})

	return &env{
		cfg:     cfg,
		logger:  logger,
		service: service,
		shutdown: func(ctx context.Context) {
			if err := telProvider.Shutdown(ctx); err != nil {
				logger.Error("telemetry shutdown error", slog.Any("error", err))
			}
		},
	}, nil
}

// normalizePath ensures the resource path starts with a slash.
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
