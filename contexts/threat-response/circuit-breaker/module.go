package circuitbreaker

import (
	"log/slog"

	httpadapter "warden/contexts/threat-response/circuit-breaker/adapters/http"
	"warden/contexts/threat-response/circuit-breaker/adapters/memory"
	"warden/contexts/threat-response/circuit-breaker/application/commands"
	"warden/contexts/threat-response/circuit-breaker/application/queries"
	"warden/contexts/threat-response/circuit-breaker/ports"
	"warden/internal/shared/guard"
)

// Module is the circuit-breaker composition root.
type Module struct {
	Handler httpadapter.Handler
	Observe commands.ObserveUseCase
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	State     ports.StateStore
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Escalator ports.Escalator
	Clock     ports.Clock

	Logger *slog.Logger
}

// NewModule wires breaker use-cases around a single re-entrancy guard so
// overlapping mutations on one instance fail fast.
func NewModule(deps Dependencies) Module {
	mutationGuard := &guard.Guard{}

	observe := commands.ObserveUseCase{
		State:     deps.State,
		Recorder:  deps.Recorder,
		Escalator: deps.Escalator,
		Clock:     deps.Clock,
		Guard:     mutationGuard,
		Logger:    deps.Logger,
	}

	handler := httpadapter.Handler{
		Observe: observe,
		UpdateThreshold: commands.UpdateThresholdUseCase{
			State:     deps.State,
			Authority: deps.Authority,
			Recorder:  deps.Recorder,
			Guard:     mutationGuard,
			Logger:    deps.Logger,
		},
		ManualReset: commands.ManualResetUseCase{
			State:     deps.State,
			Authority: deps.Authority,
			Recorder:  deps.Recorder,
			Clock:     deps.Clock,
			Guard:     mutationGuard,
			Logger:    deps.Logger,
		},
		GetWindow: queries.GetWindowUseCase{
			State:  deps.State,
			Logger: deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler: handler,
		Observe: observe,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory state.
func NewInMemoryModule(
	logger *slog.Logger,
	authority ports.Authority,
	recorder ports.AuditRecorder,
	escalator ports.Escalator,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		State:     store,
		Authority: authority,
		Recorder:  recorder,
		Escalator: escalator,
		Clock:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
