package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/noah-isme/gema-assessment-intake/internal/config"
	"github.com/noah-isme/gema-assessment-intake/internal/handler"
	"github.com/noah-isme/gema-assessment-intake/internal/middleware"
	"github.com/noah-isme/gema-assessment-intake/internal/relay"
	"github.com/noah-isme/gema-assessment-intake/internal/repository"
	"github.com/noah-isme/gema-assessment-intake/internal/router"
	"github.com/noah-isme/gema-assessment-intake/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && level != zerolog.NoLevel {
		logger = logger.Level(level)
	}

	store, err := repository.NewAssessmentFileRepository(afero.NewOsFs(), cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to prepare data directory: %v", err)
	}

	firebaseRelay, err := relay.NewFirebaseRelay(relay.FirebaseConfig{
		BaseURL: cfg.FirebaseDBURL,
		Secret:  cfg.FirebaseDBSecret,
		Timeout: cfg.RelayTimeout,
		Client:  &http.Client{Timeout: cfg.RelayTimeout},
	})
	if err != nil {
		log.Fatalf("failed to configure firebase relay: %v", err)
	}
	if firebaseRelay.Enabled() {
		logger.Info().Str("endpoint", firebaseRelay.Endpoint()).Msg("firebase relay enabled")
	} else {
		logger.Info().Msg("FIREBASE_DB_URL not set, firebase relay disabled")
	}

	relays := []relay.Relayer{firebaseRelay}

	natsConn := connectNATS(cfg, logger)
	if natsConn != nil {
		defer natsConn.Drain()
		relays = append(relays, relay.NewNATSRelay(natsConn, cfg.NATSSubject))
	}

	assessmentService := service.NewAssessmentService(store, relays, service.NewValidator(), logger)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, logger)

	app := fiber.New(handler.AppConfig(cfg.AppName))

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AssessmentHandler: assessmentHandler,
		MetricsEnabled:    true,
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Str("data_dir", store.Dir()).Msg("assessment intake listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// connectNATS returns nil when NATS is not configured or unreachable; the relay is optional.
func connectNATS(cfg config.Config, logger zerolog.Logger) *nats.Conn {
	if cfg.NATSURL == "" {
		return nil
	}

	conn, err := relay.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		logger.Warn().Err(err).Msg("nats relay disabled")
		return nil
	}

	logger.Info().Str("subject", cfg.NATSSubject).Msg("nats relay enabled")
	return conn
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
