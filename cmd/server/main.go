package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"tangled.org/brewguide.app/brewguide/internal/database/boltstore"
	"tangled.org/brewguide.app/brewguide/internal/database/sqlitestore"
	"tangled.org/brewguide.app/brewguide/internal/handlers"
	"tangled.org/brewguide.app/brewguide/internal/inventory"
	"tangled.org/brewguide.app/brewguide/internal/metrics"
	"tangled.org/brewguide.app/brewguide/internal/routing"
	"tangled.org/brewguide.app/brewguide/internal/tracing"
)

func main() {
	// Configure zerolog
	// Set log level from environment (default: info)
	logLevel := os.Getenv("LOG_LEVEL")
	switch logLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Use pretty console logging in development, JSON in production
	if os.Getenv("LOG_FORMAT") == "json" {
		// Production: JSON logs
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Development: pretty console logs
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	log.Info().Msg("Starting Brew Guide server")

	// Get port from env or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "18920"
	}

	// Data lives under BREWGUIDE_DATA_DIR, falling back to the XDG data
	// directory. This avoids issues when running from read-only
	// locations (e.g., nix run).
	dataDir := os.Getenv("BREWGUIDE_DATA_DIR")
	if dataDir == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to get home directory")
			}
			base = filepath.Join(home, ".local", "share")
		}
		dataDir = filepath.Join(base, "brewguide")
	}

	// Inventory, methods, and settings live in BoltDB
	store, err := boltstore.Open(boltstore.Options{
		Path: filepath.Join(dataDir, "brewguide.db"),
	})
	if err != nil {
		log.Fatal().Err(err).Str("dir", dataDir).Msg("Failed to open database")
	}
	defer store.Close()

	// The brewing journal lives in SQLite for date and source queries
	sqlDB, err := sqlitestore.Open(filepath.Join(dataDir, "notes.db"))
	if err != nil {
		log.Fatal().Err(err).Str("dir", dataDir).Msg("Failed to open journal database")
	}
	notes := sqlitestore.NewNoteStore(sqlDB)
	defer notes.Close()

	log.Info().Str("dir", dataDir).Msg("Databases opened")

	// Optional OTLP tracing, enabled when an endpoint is configured
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		tp, err := tracing.Init(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tracing")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("Tracer provider shutdown failed")
			}
		}()
		log.Info().Msg("Tracing initialized")
	}

	// Initialize handlers with all dependencies via constructor injection
	h := handlers.NewHandler(store, notes, store.SettingsStore(), handlers.DefaultConfig())

	// Background gauge collection for the /metrics endpoint
	svc := inventory.NewService(store, notes)
	ctx := context.Background()
	metrics.StartCollector(ctx, metrics.StatsSource{
		BeanCount: func() int {
			stats, err := svc.Stats(ctx, time.Now())
			if err != nil {
				return 0
			}
			return stats.BeanCount
		},
		RemainingGrams: func() float64 {
			stats, err := svc.Stats(ctx, time.Now())
			if err != nil {
				return 0
			}
			return stats.RemainingGrams
		},
		BeansByPhase: func() map[string]int {
			stats, err := svc.Stats(ctx, time.Now())
			if err != nil {
				return nil
			}
			out := make(map[string]int, len(stats.PhaseCounts))
			for phase, n := range stats.PhaseCounts {
				out[string(phase)] = n
			}
			return out
		},
		NoteCount: func() int {
			n, err := notes.CountNotes(ctx)
			if err != nil {
				return 0
			}
			return n
		},
		MethodCount: func() int {
			methods, err := store.ListMethods(ctx)
			if err != nil {
				return 0
			}
			return len(methods)
		},
	}, time.Minute)

	// Setup router with middleware
	handler := routing.SetupRouter(routing.Config{
		Handlers: h,
		Logger:   log.Logger,
	})

	// Wrap with OTel HTTP instrumentation for distributed tracing
	handler = otelhttp.NewHandler(handler, "brewguide-http")

	// Start HTTP server
	log.Info().
		Str("address", "0.0.0.0:"+port).
		Str("url", "http://localhost:"+port).
		Str("data_dir", dataDir).
		Msg("Starting HTTP server")

	if err := http.ListenAndServe("0.0.0.0:"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
