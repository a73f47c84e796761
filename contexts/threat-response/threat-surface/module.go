package threatsurface

import (
	"log/slog"

	httpadapter "warden/contexts/threat-response/threat-surface/adapters/http"
	"warden/contexts/threat-response/threat-surface/adapters/memory"
	"warden/contexts/threat-response/threat-surface/application/commands"
	"warden/contexts/threat-response/threat-surface/application/queries"
	"warden/contexts/threat-response/threat-surface/ports"
	"warden/internal/shared/guard"
)

// Module is the threat-surface composition root.
type Module struct {
	Handler   httpadapter.Handler
	LogThreat commands.LogThreatUseCase
	Store     *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Catalog     ports.Catalog
	History     ports.History
	Suspects    ports.Suspects
	Authority   ports.Authority
	Recorder    ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator

	Logger *slog.Logger
}

// NewModule wires surface use-cases around a single re-entrancy guard.
func NewModule(deps Dependencies) Module {
	mutationGuard := &guard.Guard{}

	logThreat := commands.LogThreatUseCase{
		Catalog:     deps.Catalog,
		History:     deps.History,
		Suspects:    deps.Suspects,
		Authority:   deps.Authority,
		Recorder:    deps.Recorder,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Guard:       mutationGuard,
		Logger:      deps.Logger,
	}

	handler := httpadapter.Handler{
		LogThreat: logThreat,
		RegisterPattern: commands.RegisterPatternUseCase{
			Catalog:   deps.Catalog,
			Authority: deps.Authority,
			Recorder:  deps.Recorder,
			Clock:     deps.Clock,
			Guard:     mutationGuard,
			Logger:    deps.Logger,
		},
		RemovePattern: commands.RemovePatternUseCase{
			Catalog:   deps.Catalog,
			Authority: deps.Authority,
			Recorder:  deps.Recorder,
			Guard:     mutationGuard,
			Logger:    deps.Logger,
		},
		IsThreatDetected: queries.IsThreatDetectedUseCase{
			Catalog: deps.Catalog,
			Logger:  deps.Logger,
		},
		PatternCount: queries.PatternCountUseCase{
			Catalog: deps.Catalog,
			Logger:  deps.Logger,
		},
		RegisteredPatterns: queries.RegisteredPatternsUseCase{
			Catalog: deps.Catalog,
			Logger:  deps.Logger,
		},
		SuspectScore: queries.SuspectScoreUseCase{
			Suspects: deps.Suspects,
			Logger:   deps.Logger,
		},
		ThreatHistory: queries.ThreatHistoryUseCase{
			History: deps.History,
			Logger:  deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler:   handler,
		LogThreat: logThreat,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(
	logger *slog.Logger,
	authority ports.Authority,
	recorder ports.AuditRecorder,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Catalog:     store,
		History:     store,
		Suspects:    store,
		Authority:   authority,
		Recorder:    recorder,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
