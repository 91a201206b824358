package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	ballotengine "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine"
	ballotpostgres "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/adapters/postgres"
	ballotworkers "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/application/workers"
	voterregistry "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry"
	registrypostgres "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/adapters/postgres"
	"github.com/Bhavna851/Decentralised-Voting-System/internal/platform/config"
	"github.com/Bhavna851/Decentralised-Voting-System/internal/platform/db"
	"github.com/Bhavna851/Decentralised-Voting-System/internal/platform/httpserver"
	"github.com/Bhavna851/Decentralised-Voting-System/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.AdminAddress) == "" {
		return nil, errors.New("ADMIN_ADDRESS is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	ballotRepo := ballotpostgres.NewRepository(pg.DB, logger)
	registryRepo := registrypostgres.NewRepository(pg.DB, logger)

	registryModule := voterregistry.NewModule(voterregistry.Dependencies{
		AdminID: cfg.AdminAddress,
		Voters:  registryRepo,
		Audit:   ballotRepo,
		Clock:   registrypostgres.SystemClock{},
		IDGen:   registrypostgres.UUIDGenerator{},
		Logger:  logger,
	})
	ballotModule := ballotengine.NewModule(ballotengine.Dependencies{
		Polls:    ballotRepo,
		Registry: registryModule.Lookups,
		Audit:    ballotRepo,
		Clock:    ballotpostgres.SystemClock{},
		IDGen:    ballotpostgres.UUIDGenerator{},
		Logger:   logger,
	})

	server := httpserver.New(ballotModule, registryModule, logger, ":"+cfg.HTTPPort)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run() error {
	return a.server.Start()
}

func (a *APIApp) Close() error {
	return a.postgres.Close()
}

type WorkerApp struct {
	postgres     *db.Postgres
	relay        ballotworkers.AuditRelay
	pollInterval time.Duration
	logger       *slog.Logger
	enabled      bool
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	bus, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	ballotRepo := ballotpostgres.NewRepository(pg.DB, logger)
	relay := ballotworkers.AuditRelay{
		Audit:     ballotRepo,
		Publisher: bus,
		Clock:     ballotpostgres.SystemClock{},
		BatchSize: cfg.AuditRelayBatch,
		Logger:    logger,
	}

	return &WorkerApp{
		postgres:     pg,
		relay:        relay,
		pollInterval: cfg.AuditRelayInterval,
		logger:       logger,
		enabled:      cfg.EnableAuditRelay,
	}, nil
}

// Run drives relay cycles until the context is cancelled. Cycle errors are
// logged and retried on the next tick rather than stopping the worker.
func (a *WorkerApp) Run(ctx context.Context) error {
	if !a.enabled {
		a.logger.Info("audit relay disabled; worker idling",
			"event", "worker_audit_relay_disabled",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := a.relay.RunOnce(ctx); err != nil {
				a.logger.Error("audit relay cycle failed",
					"event", "worker_audit_relay_cycle_failed",
					"module", "internal/app/bootstrap",
					"layer", "platform",
					"error", err.Error(),
				)
			}
		}
	}
}

func (a *WorkerApp) Close() error {
	return a.postgres.Close()
}
