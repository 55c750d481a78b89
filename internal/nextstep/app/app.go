package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/nextstep/internal/nextstep/afs"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/delivery"
	httpapi "github.com/aussiebroadwan/nextstep/internal/nextstep/http"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/resend"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/service"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store"
	"github.com/aussiebroadwan/nextstep/internal/nextstep/store/drivers/sqlite"
	"github.com/aussiebroadwan/nextstep/pkg/jwtx"
	"github.com/aussiebroadwan/nextstep/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the Next Step server together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	secrets  Secrets
	verifier *jwtx.HS256
	redis    redis.UniversalClient // nil unless REDIS_ADDR is set
	closers  []func() error

	// Collaborators
	sender    service.OtpSender
	tracker   service.ResendTracker
	afsClient service.AfsClient

	// Services
	credentialService   *service.CredentialService
	otpService          *service.OtpService
	operationService    *service.OperationService
	counterService      *service.CounterService
	userService         *service.UserService
	authMethodService   *service.AuthMethodService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates the application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "nextstep",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	secrets, err := LoadSecrets(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.secrets = secrets

	if app.verifier, err = secrets.Verifier(cfg.Issuer); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initCollaborators(); err != nil {
		app.closeAll()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		app.closeAll()
		return nil, err
	}
	if err := app.applySeed(context.Background()); err != nil {
		app.closeAll()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("nextstep starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			app.closeAll()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down nextstep...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeAll(); err != nil {
		return err
	}

	app.logger.Info("nextstep stopped")
	return nil
}

// closeAll releases collaborators in reverse order, then the database.
func (app *Application) closeAll() error {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error("error closing collaborator", "error", err)
		}
	}
	app.closers = nil

	if app.db == nil {
		return nil
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	app.db = nil
	return nil
}

func (app *Application) initDatabase() error {
	// Immediate transactions serialize writers so counter updates never race.
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate",
		app.cfg.DatabaseFile,
	)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		app.db = nil
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCollaborators builds the OTP sender, the resend tracker and the AFS client.
func (app *Application) initCollaborators() error {
	switch app.cfg.OtpSender {
	case "twilio":
		sender, err := delivery.NewTwilioSender(delivery.TwilioConfig{
			AccountSid: app.cfg.TwilioAccountSid,
			AuthToken:  app.cfg.TwilioAuthToken,
			From:       app.cfg.TwilioFrom,
		}, &delivery.ContactDirectory{Store: app.db}, app.logger)
		if err != nil {
			return err
		}
		app.sender = sender
	case "kafka":
		producer, err := delivery.NewKafkaProducer(app.cfg.KafkaBrokers)
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		sender := delivery.NewKafkaSender(producer, app.cfg.KafkaTopic, app.logger)
		app.closers = append(app.closers, sender.Close)
		app.sender = sender
	case "log", "":
		app.sender = &delivery.LogSender{Logger: app.logger}
	default:
		return fmt.Errorf("unknown otp sender %q", app.cfg.OtpSender)
	}
	app.logger.Info("otp sender configured", "sender", app.cfg.OtpSender)

	if app.cfg.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
		})
		app.closers = append(app.closers, app.redis.Close)
		app.tracker = resend.NewRedisTracker(app.redis, resend.RedisConfig{
			TTL: max(2*app.cfg.ResendDelay, time.Hour),
		})
		app.logger.Info("resend tracker configured", "backend", "redis", "addr", app.cfg.RedisAddr)
	} else {
		app.tracker = resend.NewStoreTracker(app.db)
		app.logger.Info("resend tracker configured", "backend", "database")
	}

	if app.cfg.AfsURL != "" {
		app.afsClient = afs.NewClient(app.cfg.AfsURL, app.cfg.AfsToken)
		app.logger.Info("anti-fraud system enabled", "url", app.cfg.AfsURL)
	}
	return nil
}

func (app *Application) initServices() error {
	protection, err := app.secrets.Protection()
	if err != nil {
		return err
	}

	app.credentialService = &service.CredentialService{
		Store:               app.db,
		Logger:              app.logger,
		Policy:              &service.PolicyEngine{Protection: protection},
		Protection:          protection,
		E2E:                 &service.E2EService{Key: app.cfg.E2EKey},
		UseOriginalUsername: app.cfg.UseOriginalUsername,
	}
	app.otpService = &service.OtpService{
		Store:       app.db,
		Logger:      app.logger,
		Protection:  protection,
		Sender:      app.sender,
		Tracker:     app.tracker,
		ResendDelay: app.cfg.ResendDelay,
	}
	app.authMethodService = &service.AuthMethodService{Store: app.db, Logger: app.logger}
	app.operationService = &service.OperationService{
		Store:                 app.db,
		Logger:                app.logger,
		Credentials:           app.credentialService,
		Otps:                  app.otpService,
		Afs:                   app.afsClient,
		AuthMethods:           app.authMethodService,
		ResendDelay:           app.cfg.ResendDelay,
		ShowRemainingAttempts: app.cfg.ShowRemainingAttempts,
	}
	app.counterService = &service.CounterService{Store: app.db, Logger: app.logger}
	app.userService = &service.UserService{Store: app.db, Logger: app.logger}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

func (app *Application) applySeed(ctx context.Context) error {
	if app.cfg.SeedFile == "" {
		return nil
	}
	f, err := LoadSeedFile(app.cfg.SeedFile)
	if err != nil {
		return err
	}

	seeder := &Seeder{
		Store:       app.db,
		Operations:  app.operationService,
		Users:       app.userService,
		AuthMethods: app.authMethodService,
		Logger:      app.logger,
	}
	if err := seeder.Apply(ctx, f); err != nil {
		return fmt.Errorf("failed to apply seed file: %w", err)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.verifier, BuildVersion, app.db, app.logger)

	router.OperationService = app.operationService
	router.CredentialService = app.credentialService
	router.OtpService = app.otpService
	router.CounterService = app.counterService
	router.UserService = app.userService
	router.AuthMethodService = app.authMethodService
	if app.redis != nil {
		router.AddReadinessCheck("redis", func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		})
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
