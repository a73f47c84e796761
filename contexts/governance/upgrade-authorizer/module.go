package upgradeauthorizer

import (
	"log/slog"

	httpadapter "warden/contexts/governance/upgrade-authorizer/adapters/http"
	"warden/contexts/governance/upgrade-authorizer/adapters/memory"
	"warden/contexts/governance/upgrade-authorizer/application/commands"
	"warden/contexts/governance/upgrade-authorizer/application/queries"
	"warden/contexts/governance/upgrade-authorizer/ports"
	"warden/internal/shared/guard"
)

// Module is the upgrade-authorizer composition root.
type Module struct {
	Handler  httpadapter.Handler
	Approve  commands.ApproveUpgradeUseCase
	Validate commands.ValidateUpgradeUseCase

	CurrentNonce queries.CurrentNonceUseCase
	HasApproved  queries.HasApprovedUseCase

	Store *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Store     ports.Store
	Authority ports.Authority
	Recorder  ports.AuditRecorder
	Clock     ports.Clock

	Logger *slog.Logger
}

// NewModule wires authorizer use-cases around a single re-entrancy guard.
func NewModule(deps Dependencies) Module {
	mutationGuard := &guard.Guard{}

	approve := commands.ApproveUpgradeUseCase{
		Store:     deps.Store,
		Authority: deps.Authority,
		Recorder:  deps.Recorder,
		Clock:     deps.Clock,
		Guard:     mutationGuard,
		Logger:    deps.Logger,
	}
	validate := commands.ValidateUpgradeUseCase{
		Store:     deps.Store,
		Authority: deps.Authority,
		Recorder:  deps.Recorder,
		Clock:     deps.Clock,
		Guard:     mutationGuard,
		Logger:    deps.Logger,
	}

	handler := httpadapter.Handler{
		Approve:  approve,
		Validate: validate,
		SetRequiredApprovals: commands.SetRequiredApprovalsUseCase{
			Store:     deps.Store,
			Authority: deps.Authority,
			Recorder:  deps.Recorder,
			Guard:     mutationGuard,
			Logger:    deps.Logger,
		},
		SetMinInterval: commands.SetMinIntervalUseCase{
			Store:     deps.Store,
			Authority: deps.Authority,
			Recorder:  deps.Recorder,
			Guard:     mutationGuard,
			Logger:    deps.Logger,
		},
		CandidateStatus: queries.CandidateStatusUseCase{
			Store:  deps.Store,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler:  handler,
		Approve:  approve,
		Validate: validate,
		CurrentNonce: queries.CurrentNonceUseCase{
			Store:  deps.Store,
			Logger: deps.Logger,
		},
		HasApproved: queries.HasApprovedUseCase{
			Store:  deps.Store,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory state.
func NewInMemoryModule(
	logger *slog.Logger,
	authority ports.Authority,
	recorder ports.AuditRecorder,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Store:     store,
		Authority: authority,
		Recorder:  recorder,
		Clock:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
