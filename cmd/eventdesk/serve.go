package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/spf13/cobra"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eventdesk/eventdesk/internal/build"
	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/internal/controller"
	"github.com/eventdesk/eventdesk/internal/fixtures"
	"github.com/eventdesk/eventdesk/internal/handler"
	"github.com/eventdesk/eventdesk/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := initLogger(cfg.Production)
			if err != nil {
				return err
			}

			source, err := newSource(cfg)
			if err != nil {
				return err
			}

			events := store.NewEventStore(source, logger)
			participants := store.NewParticipantStore(source, events.ReferencesParticipant, logger)
			tags := store.NewTagStore(source, events.ReferencesTag, logger)

			ctrl := controller.New(events, participants, tags, logger)

			// One-shot fixture loads. A failed load leaves the store empty
			// and surfaces a banner; the server starts regardless.
			ctx := context.Background()
			events.Load(ctx)
			participants.Load(ctx)
			tags.Load(ctx)

			sessions := scs.New()
			sessions.Lifetime = cfg.SessionLifetime

			router := handler.NewRouter(handler.Deps{
				Sessions:     sessions,
				Controller:   ctrl,
				Events:       events,
				Participants: participants,
				Tags:         tags,
			})

			server := &http.Server{
				Addr:    cfg.HTTP.Addr,
				Handler: router,
			}
			closer.Bind(func() {
				_ = server.Shutdown(context.Background())
			})

			logger.Infow("listening",
				"addr", cfg.HTTP.Addr,
				"fixtures", cfg.Fixtures.Source,
				"version", build.Version,
			)
			return server.ListenAndServe()
		},
	}
}

func newSource(cfg *config.Config) (fixtures.Source, error) {
	switch cfg.Fixtures.Source {
	case "embed":
		return fixtures.Embedded(), nil
	case "dir":
		return fixtures.Dir(cfg.Fixtures.Dir), nil
	case "http":
		return fixtures.URL(cfg.Fixtures.URL, cfg.Fixtures.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown fixtures source %q", cfg.Fixtures.Source)
	}
}

func initLogger(production bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if production {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}
	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
