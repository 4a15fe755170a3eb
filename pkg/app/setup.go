package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/jwhwang/atmbank/infra"
	infraeventbus "github.com/jwhwang/atmbank/infra/eventbus"
	infrarepo "github.com/jwhwang/atmbank/infra/repository"
	infrasession "github.com/jwhwang/atmbank/infra/session"
	"github.com/jwhwang/atmbank/pkg/config"
	"github.com/jwhwang/atmbank/pkg/eventbus"
	"github.com/jwhwang/atmbank/pkg/repository"
	"github.com/jwhwang/atmbank/pkg/session"
)

// Deps holds the wired dependencies of the application.
type Deps struct {
	Uow      repository.UnitOfWork
	Sessions session.Store
	Bus      eventbus.EventBus
	Logger   *slog.Logger
	Config   *config.App
}

// Setup connects to postgres and redis, applies migrations, and wires the
// unit of work, session store, and event bus.
func Setup(cfg *config.App, logger *slog.Logger) (*Deps, error) {
	db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.RunMigrations(cfg.DB.Url, cfg.DB.MigrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DialTimeout = cfg.Redis.DialTimeout
	opt.ReadTimeout = cfg.Redis.ReadTimeout
	opt.WriteTimeout = cfg.Redis.WriteTimeout
	sessions := infrasession.NewRedisStore(opt, cfg.Redis.KeyPrefix, cfg.Session.TTL, logger)

	var bus eventbus.EventBus
	if cfg.Kafka != nil && cfg.Kafka.Brokers != "" {
		bus, err = infraeventbus.NewKafkaEventBus(
			strings.Split(cfg.Kafka.Brokers, ","), cfg.Kafka.TopicPrefix, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka event bus: %w", err)
		}
	} else {
		bus = infraeventbus.NewMemoryEventBus()
	}

	return &Deps{
		Uow:      infrarepo.NewUoW(db),
		Sessions: sessions,
		Bus:      bus,
		Logger:   logger,
		Config:   cfg,
	}, nil
}
