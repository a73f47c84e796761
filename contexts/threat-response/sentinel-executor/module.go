package sentinelexecutor

import (
	"log/slog"

	httpadapter "warden/contexts/threat-response/sentinel-executor/adapters/http"
	"warden/contexts/threat-response/sentinel-executor/adapters/memory"
	"warden/contexts/threat-response/sentinel-executor/application/commands"
	"warden/contexts/threat-response/sentinel-executor/application/queries"
	"warden/contexts/threat-response/sentinel-executor/application/workers"
	"warden/contexts/threat-response/sentinel-executor/ports"
)

// Module is the sentinel-executor composition root. Consumer is exported so
// the worker runtime can subscribe it to the audit stream.
type Module struct {
	Handler  httpadapter.Handler
	Evaluate commands.EvaluateUseCase
	Consumer workers.AuditStreamConsumer
	Store    *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Settings   ports.Settings
	Dedup      ports.Dedup
	PauseGuard ports.PauseGuard
	Authority  ports.Authority
	Recorder   ports.AuditRecorder

	Logger *slog.Logger
}

// NewModule wires the gate, the admin command and the stream consumer.
func NewModule(deps Dependencies) Module {
	evaluate := commands.EvaluateUseCase{
		Settings:   deps.Settings,
		PauseGuard: deps.PauseGuard,
		Recorder:   deps.Recorder,
		Logger:     deps.Logger,
	}

	handler := httpadapter.Handler{
		Evaluate: evaluate,
		UpdateThreshold: commands.UpdateThresholdUseCase{
			Settings:  deps.Settings,
			Authority: deps.Authority,
			Recorder:  deps.Recorder,
			Logger:    deps.Logger,
		},
		Status: queries.StatusUseCase{
			Settings:   deps.Settings,
			PauseGuard: deps.PauseGuard,
			Logger:     deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler:  handler,
		Evaluate: evaluate,
		Consumer: workers.AuditStreamConsumer{
			Dedup:    deps.Dedup,
			Evaluate: evaluate,
			Logger:   deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(
	logger *slog.Logger,
	pause ports.PauseGuard,
	authority ports.Authority,
	recorder ports.AuditRecorder,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Settings:   store,
		Dedup:      store,
		PauseGuard: pause,
		Authority:  authority,
		Recorder:   recorder,
		Logger:     logger,
	})
	module.Store = store
	return module
}
