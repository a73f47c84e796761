package compensationworkflow

import (
	"log/slog"

	httpadapter "warden/contexts/governance/compensation-workflow/adapters/http"
	"warden/contexts/governance/compensation-workflow/adapters/memory"
	"warden/contexts/governance/compensation-workflow/application/commands"
	"warden/contexts/governance/compensation-workflow/application/queries"
	"warden/contexts/governance/compensation-workflow/ports"
	"warden/internal/shared/guard"
)

// Module is the compensation-workflow composition root.
type Module struct {
	Handler httpadapter.Handler
	Propose commands.ProposeUseCase
	Approve commands.ApproveUseCase
	Execute commands.ExecuteUseCase

	GetProposal    queries.GetProposalUseCase
	ListProposals  queries.ListProposalsUseCase
	ReserveBalance queries.ReserveBalanceUseCase

	Store *memory.Store
	Vault *memory.Vault
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Vault       ports.ReserveVault
	Authority   ports.Authority
	Recorder    ports.AuditRecorder
	Clock       ports.Clock
	IDGenerator ports.IDGenerator

	Logger *slog.Logger
}

// NewModule wires the workflow use-cases around a single re-entrancy guard.
func NewModule(deps Dependencies) Module {
	mutationGuard := &guard.Guard{}

	propose := commands.ProposeUseCase{
		Repository:  deps.Repository,
		Authority:   deps.Authority,
		Recorder:    deps.Recorder,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Guard:       mutationGuard,
		Logger:      deps.Logger,
	}
	approve := commands.ApproveUseCase{
		Repository: deps.Repository,
		Authority:  deps.Authority,
		Recorder:   deps.Recorder,
		Clock:      deps.Clock,
		Guard:      mutationGuard,
		Logger:     deps.Logger,
	}
	execute := commands.ExecuteUseCase{
		Repository: deps.Repository,
		Vault:      deps.Vault,
		Recorder:   deps.Recorder,
		Clock:      deps.Clock,
		Guard:      mutationGuard,
		Logger:     deps.Logger,
	}

	getProposal := queries.GetProposalUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	listProposals := queries.ListProposalsUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	reserveBalance := queries.ReserveBalanceUseCase{
		Vault:  deps.Vault,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		Propose:        propose,
		Approve:        approve,
		Execute:        execute,
		GetProposal:    getProposal,
		ListProposals:  listProposals,
		ReserveBalance: reserveBalance,
		Logger:         deps.Logger,
	}

	return Module{
		Handler:        handler,
		Propose:        propose,
		Approve:        approve,
		Execute:        execute,
		GetProposal:    getProposal,
		ListProposals:  listProposals,
		ReserveBalance: reserveBalance,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory state
// and a seeded reserve.
func NewInMemoryModule(
	logger *slog.Logger,
	authority ports.Authority,
	recorder ports.AuditRecorder,
) Module {
	store := memory.NewStore()
	vault := memory.NewVault(memory.DefaultReserveBalance)
	module := NewModule(Dependencies{
		Repository:  store,
		Vault:       vault,
		Authority:   authority,
		Recorder:    recorder,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	module.Vault = vault
	return module
}
