package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"talkschedule/config"
	"talkschedule/internal/adapters/email"
	"talkschedule/internal/domain"
	"talkschedule/internal/repository/memory"
	"talkschedule/internal/repository/postgres"
	"talkschedule/internal/repository/sqlite"
	"talkschedule/internal/services"
)

// store is an opened talk repository with its lifecycle hooks.
type store struct {
	repo  domain.TalkRepository
	ping  func(ctx context.Context) error
	close func() error
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("connected to postgres")
		return &store{repo: postgres.NewTalkRepository(db), ping: db.PingContext, close: db.Close}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite store", "path", cfg.SQLitePath)
		return &store{repo: sqlite.NewTalkRepository(db), ping: db.PingContext, close: db.Close}, nil
	default:
		logger.Info("using in-memory store, talks are lost on restart")
		return &store{repo: memory.NewTalkRepository(), close: func() error { return nil }}, nil
	}
}

// notifyTimeout bounds a single booking notification.
const notifyTimeout = 15 * time.Second

// newBookingNotifier builds the background organizer notifier configured in cfg.
func newBookingNotifier(cfg *config.Config, logger *slog.Logger) (*services.AsyncNotifier, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mailer.AWSRegion,
			AccessKeyID:        cfg.Mailer.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mailer.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mailer.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}
	notifier := services.NewBookingNotifier(mailer, renderer, cfg.Mailer.OrganizerAddress, cfg.Location, logger)
	return services.NewAsyncNotifier(notifier, notifyTimeout, logger), nil
}

// newTalkService wires the service for cfg. notifier may be nil.
func newTalkService(cfg *config.Config, repo domain.TalkRepository, notifier domain.BookingNotifier, logger *slog.Logger) domain.TalkService {
	return services.NewTalkService(repo, cfg.Roster, cfg.Location, notifier, logger, cfg.ContextTimeout)
}
