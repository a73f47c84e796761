// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	accesscoordinator "warden/contexts/access-control/access-coordinator"
	coordaudit "warden/contexts/access-control/access-coordinator/adapters/audit"
	coordentities "warden/contexts/access-control/access-coordinator/domain/entities"
	forensicledger "warden/contexts/audit-core/forensic-ledger"
	ledgercommands "warden/contexts/audit-core/forensic-ledger/application/commands"
	ledgerpostgres "warden/contexts/audit-core/forensic-ledger/adapters/postgres"
	compensationworkflow "warden/contexts/governance/compensation-workflow"
	compaudit "warden/contexts/governance/compensation-workflow/adapters/audit"
	compauthority "warden/contexts/governance/compensation-workflow/adapters/authority"
	upgradeauthorizer "warden/contexts/governance/upgrade-authorizer"
	upgradeaudit "warden/contexts/governance/upgrade-authorizer/adapters/audit"
	upgradeauthority "warden/contexts/governance/upgrade-authorizer/adapters/authority"
	circuitbreaker "warden/contexts/threat-response/circuit-breaker"
	breakeraudit "warden/contexts/threat-response/circuit-breaker/adapters/audit"
	breakerauthority "warden/contexts/threat-response/circuit-breaker/adapters/authority"
	sentinelexecutor "warden/contexts/threat-response/sentinel-executor"
	sentinelaudit "warden/contexts/threat-response/sentinel-executor/adapters/audit"
	sentinelauthority "warden/contexts/threat-response/sentinel-executor/adapters/authority"
	threatsurface "warden/contexts/threat-response/threat-surface"
	threataudit "warden/contexts/threat-response/threat-surface/adapters/audit"
	threatauthority "warden/contexts/threat-response/threat-surface/adapters/authority"
	"warden/internal/platform/config"
	"warden/internal/platform/db"
	"warden/internal/platform/httpserver"
	"warden/internal/platform/messaging"
	"warden/internal/platform/metrics"
	"warden/internal/platform/pauseguard"
	"warden/internal/shared/events"
)

// SentinelConsumerGroup names the audit-stream subscription feeding the
// auto-pause gate.
const SentinelConsumerGroup = "sentinel-executor-cg"

type APIApp struct {
	server   *httpserver.Server
	bus      *messaging.Bus
	modules  httpserver.Modules
	cfg      config.Config
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	seal         ledgercommands.SealSegmentUseCase
	batchLimit   int
	pollInterval time.Duration
	postgres     *db.Postgres
	logger       *slog.Logger
}

// BuildAPI wires every module into one process. The forensic ledger persists
// to postgres when POSTGRES_DSN is set and falls back to in-memory adapters
// otherwise; the authority, threat, and governance modules hold their state
// in memory behind ports.
func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	bus := messaging.NewBus(logger)
	pause := &pauseguard.Guard{}

	ledger, pg, err := buildLedger(cfg, bus, logger)
	if err != nil {
		return nil, err
	}

	coordinator := accesscoordinator.NewInMemoryModule(
		logger,
		coordaudit.Recorder{Ledger: ledger.Record},
		pause,
	)
	// The breaker escalates under a service identity; seed it with the
	// sentinel tag so the machine path clears the authority gate.
	if err := coordinator.Store.GrantRole(
		context.Background(),
		breakerauthority.ServiceActor,
		coordentities.RoleSentinel,
		time.Now().UTC(),
	); err != nil {
		return nil, err
	}

	breakerBridge := breakerauthority.Bridge{
		CheckAuthority: coordinator.CheckAuthority,
		EmergencyPause: coordinator.EmergencyPause,
	}
	breaker := circuitbreaker.NewInMemoryModule(
		logger,
		breakerBridge,
		breakeraudit.Recorder{Ledger: ledger.Record},
		breakerBridge,
	)

	threats := threatsurface.NewInMemoryModule(
		logger,
		threatauthority.Bridge{CheckAuthority: coordinator.CheckAuthority},
		threataudit.Recorder{Ledger: ledger.Record},
	)

	sentinel := sentinelexecutor.NewInMemoryModule(
		logger,
		pause,
		sentinelauthority.Bridge{CheckAuthority: coordinator.CheckAuthority},
		sentinelaudit.Recorder{Ledger: ledger.Record},
	)

	authorizer := upgradeauthorizer.NewInMemoryModule(
		logger,
		upgradeauthority.Bridge{CheckAuthority: coordinator.CheckAuthority},
		upgradeaudit.Recorder{Ledger: ledger.Record},
	)

	compensation := compensationworkflow.NewInMemoryModule(
		logger,
		compauthority.Bridge{CheckAuthority: coordinator.CheckAuthority},
		compaudit.Recorder{Ledger: ledger.Record},
	)

	modules := httpserver.Modules{
		Ledger:       ledger,
		Coordinator:  coordinator,
		Breaker:      breaker,
		Threats:      threats,
		Sentinel:     sentinel,
		Authorizer:   authorizer,
		Compensation: compensation,
	}

	collectors := metrics.NewCollectors()
	server := httpserver.New(modules, logger, normalizeAddr(cfg.HTTPPort), metricsHandlerFor(cfg, collectors))

	app := &APIApp{
		server:   server,
		bus:      bus,
		modules:  modules,
		cfg:      cfg,
		postgres: pg,
		logger:   logger,
	}
	if err := app.subscribe(context.Background(), collectors); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *APIApp) subscribe(ctx context.Context, collectors *metrics.Collectors) error {
	if a.cfg.EnableSentinelConsumer {
		if err := a.bus.Subscribe(
			ctx,
			events.TopicAuditRecorded,
			SentinelConsumerGroup,
			a.modules.Sentinel.Consumer.Handle,
		); err != nil {
			return err
		}
	}
	if a.cfg.EnableMetrics {
		for _, topic := range []string{events.TopicAuditRecorded, events.TopicSegmentSealed} {
			if err := a.bus.Subscribe(ctx, topic, "metrics-cg", collectors.HandleAuditEvent); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildLedger(cfg config.Config, bus *messaging.Bus, logger *slog.Logger) (forensicledger.Module, *db.Postgres, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return forensicledger.NewInMemoryModule(logger, bus), nil, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return forensicledger.Module{}, nil, err
	}

	repo := ledgerpostgres.NewRepository(pg.DB, logger)
	if err := repo.Migrate(context.Background()); err != nil {
		_ = pg.Close()
		return forensicledger.Module{}, nil, err
	}

	module := forensicledger.NewModule(forensicledger.Dependencies{
		Repository:     repo,
		Seals:          repo,
		Publisher:      bus,
		Clock:          ledgerpostgres.SystemClock{},
		IDGenerator:    ledgerpostgres.UUIDGenerator{},
		NetworkID:      cfg.NetworkID,
		Environment:    cfg.Environment,
		NotarySeal:     "WARDEN-FORENSIC-SEAL",
		Authority:      cfg.SealAuthority,
		SealBatchLimit: cfg.SealBatchSize,
		Logger:         logger,
	})
	return module, pg, nil
}

// BuildWorker wires the seal scheduler process. It shares the ledger tables
// with the API through postgres, so sealing resumes from the stored cursor
// no matter which process wrote the records.
func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	bus := messaging.NewBus(logger)

	ledger, pg, err := buildLedger(cfg, bus, logger)
	if err != nil {
		return nil, err
	}

	return &WorkerApp{
		seal:         ledger.Seal,
		batchLimit:   cfg.SealBatchSize,
		pollInterval: cfg.SealInterval,
		postgres:     pg,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if _, err := w.seal.Execute(ctx, ledgercommands.SealSegmentCommand{
			BatchLimit: w.batchLimit,
		}); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func metricsHandlerFor(cfg config.Config, collectors *metrics.Collectors) http.Handler {
	if !cfg.EnableMetrics {
		return nil
	}
	return collectors.Handler()
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
