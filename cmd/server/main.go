// Copyright 2026 The GPS Message Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mobilebiz/gps-message/internal/audit"
	"github.com/mobilebiz/gps-message/internal/config"
	"github.com/mobilebiz/gps-message/internal/cooldown"
	"github.com/mobilebiz/gps-message/internal/dispatch"
	"github.com/mobilebiz/gps-message/internal/geo"
	"github.com/mobilebiz/gps-message/internal/observability/logger"
	"github.com/mobilebiz/gps-message/internal/observability/metrics"
	"github.com/mobilebiz/gps-message/internal/observability/tracing"
	"github.com/mobilebiz/gps-message/internal/registry"
	"github.com/mobilebiz/gps-message/internal/sms"
	"github.com/mobilebiz/gps-message/internal/state"
	"github.com/mobilebiz/gps-message/internal/store/memory"
	"github.com/mobilebiz/gps-message/internal/store/postgres"
	transportHTTP "github.com/mobilebiz/gps-message/internal/transport/http"
	"github.com/mobilebiz/gps-message/web"
)

func main() {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
	slog.Info("starting gps-message notification service")

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(cfg); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx := context.Background()

	// Initialize tracer
	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		SamplingRate:   1.0,
	})
	if err != nil {
		slog.Error("failed to initialize tracer", logger.Error(err))
	}
	defer tracer.Shutdown(ctx)

	// Initialize meter
	meter, err := metrics.New(ctx, metrics.Config{
		Enabled: cfg.Observability.OTELEnabled,
	}, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize meter", logger.Error(err))
	}

	// Initialize the state backend
	var backend state.Store
	var db *postgres.DB
	switch cfg.State.Backend {
	case "postgres":
		db, err = postgres.New(ctx, postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			Database:     cfg.Database.Database,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			slog.Error("failed to connect to database", logger.Error(err))
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("connected to database")
		backend = postgres.NewStateRepository(db)
	case "memory":
		slog.Warn("using in-memory state backend; state is lost on restart")
		backend = memory.New()
	}
	stateClient := state.NewClient(backend)

	// Initialize helpers
	auditLogger := audit.NewSlogLogger()

	// Initialize services
	registryService := registry.NewService(stateClient, auditLogger)
	gate := cooldown.NewGate(stateClient, cfg.Notify.CooldownWindow)
	sender := sms.NewVonageSender(cfg.Notify.VonageAPIKey, cfg.Notify.VonageAPISecret)
	fence := geo.Fence{
		Target: geo.Point{
			Lat: cfg.Geofence.TargetLat,
			Lon: cfg.Geofence.TargetLon,
		},
		RadiusMeters: cfg.Geofence.RadiusMeters,
	}

	var dispatchMetrics *dispatch.Metrics
	if meter != nil {
		dispatchMetrics, err = dispatch.NewMetrics(meter)
		if err != nil {
			slog.Error("failed to register dispatch metrics", logger.Error(err))
		}
	}

	pipeline := dispatch.NewPipeline(
		registryService,
		gate,
		fence,
		sender,
		dispatch.Config{
			SenderID:    cfg.Notify.SenderID,
			MessageBody: cfg.Notify.MessageBody,
		},
		auditLogger,
		dispatchMetrics,
	)

	// Rate Limiter
	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Embedded admin UI
	staticFS, err := web.StaticFS()
	if err != nil {
		slog.Error("failed to load embedded admin assets", logger.Error(err))
		os.Exit(1)
	}

	// Initialize HTTP handler
	handler := transportHTTP.NewHandler(pipeline, registryService)
	router := transportHTTP.NewRouter(handler, rateLimiter, staticFS)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server
	go func() {
		slog.Info("starting http server", logger.Component("server"), logger.Operation("listen"))
		slog.Info(fmt.Sprintf("listening on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", logger.Error(err))
	}

	slog.Info("server stopped")
}

func runMigrate(cfg *config.Config) error {
	if cfg.State.Backend != "postgres" {
		return fmt.Errorf("migrate requires STATE_BACKEND=postgres, got %q", cfg.State.Backend)
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("Applying initial schema...")
	if err := db.Migrate(ctx, postgres.InitialSchema); err != nil {
		return err
	}
	fmt.Println("Migration successful.")
	return nil
}
