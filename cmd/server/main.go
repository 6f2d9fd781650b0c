package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventflow/config"
	_ "eventflow/docs"
	"eventflow/internal/adapters/auth"
	"eventflow/internal/adapters/calendar"
	"eventflow/internal/adapters/email"
	delivery "eventflow/internal/delivery/http"
	"eventflow/internal/delivery/http/controllers"
	"eventflow/internal/domain"
	"eventflow/internal/repository/memory"
	"eventflow/internal/repository/postgres"
	"eventflow/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title EventFlow API
// @version 1.0
// @description Event management dashboard backend: one action endpoint plus calendar export.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger(os.Stdout)
	if err := run(logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}

	clock := services.NewClock(cfg.Timezone)
	tokens := auth.NewJWT(cfg.JWTSecret)
	renderer := email.NewStoreRenderer(store, email.NewTemplateRenderer())

	configSvc := services.NewConfigService(store)
	activity := services.NewActivityLog(store, clock)
	emails := services.NewEmailService(mailer, renderer, logger)

	actionController := controllers.NewActionController(logger, controllers.ActionServices{
		Users:        services.NewUserService(store, tokens, cfg.TokenExpiry, clock),
		Events:       services.NewEventService(store, configSvc, clock, cfg.RequestTimeout),
		Summary:      services.NewSummaryService(store, activity, cfg.SummaryLogLimit, cfg.RequestTimeout),
		Workflow:     services.NewWorkflowService(store, configSvc, emails, clock, logger, cfg.RequestTimeout),
		Participants: services.NewParticipantService(store, clock),
		Config:       configSvc,
		Activity:     activity,
	})
	calendarController := controllers.NewCalendarController(logger,
		services.NewCalendarService(store, configSvc, clock),
		calendar.NewICSRenderer(),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           delivery.NewHandler(logger, tokens, delivery.NewRouter(actionController, calendarController)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore returns the configured TableStore and a close func.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.TableStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewTableStore(domain.AllTables...), func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return nil, nil, err
	}
	if cfg.RunMigrations {
		applied, err := postgres.Migrate(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("migrations applied", "count", applied)
	}
	return postgres.NewTableStore(db), func() { _ = db.Close() }, nil
}
