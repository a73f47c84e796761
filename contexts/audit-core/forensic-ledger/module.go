package forensicledger

import (
	"log/slog"

	httpadapter "warden/contexts/audit-core/forensic-ledger/adapters/http"
	"warden/contexts/audit-core/forensic-ledger/adapters/memory"
	"warden/contexts/audit-core/forensic-ledger/application/commands"
	"warden/contexts/audit-core/forensic-ledger/application/queries"
	"warden/contexts/audit-core/forensic-ledger/ports"
)

// Module is the forensic-ledger composition root exposed to runtime wiring.
// Record is exported so other modules' audit bridges can report here.
type Module struct {
	Handler httpadapter.Handler
	Record  commands.RecordEventUseCase
	Seal    commands.SealSegmentUseCase
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Seals       ports.SealStore
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator

	NetworkID      string
	Environment    string
	NotarySeal     string
	Authority      string
	SealBatchLimit int

	Logger *slog.Logger
}

// NewModule wires ledger use-cases and the transport handler using explicit ports.
func NewModule(deps Dependencies) Module {
	record := commands.RecordEventUseCase{
		Repository:  deps.Repository,
		Publisher:   deps.Publisher,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		NetworkID:   deps.NetworkID,
		Environment: deps.Environment,
		Logger:      deps.Logger,
	}
	seal := commands.SealSegmentUseCase{
		Repository:  deps.Repository,
		Seals:       deps.Seals,
		Publisher:   deps.Publisher,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		NotarySeal:  deps.NotarySeal,
		Authority:   deps.Authority,
		BatchLimit:  deps.SealBatchLimit,
		Logger:      deps.Logger,
	}
	getRecord := queries.GetRecordUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	listRecords := queries.ListRecordsUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	listSeals := queries.ListSealsUseCase{
		Seals:  deps.Seals,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		RecordEvent: record,
		SealSegment: seal,
		GetRecord:   getRecord,
		ListRecords: listRecords,
		ListSeals:   listSeals,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: handler,
		Record:  record,
		Seal:    seal,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger, publisher ports.EventPublisher) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:     store,
		Seals:          store,
		Publisher:      publisher,
		Clock:          store,
		IDGenerator:    store,
		NetworkID:      "warden-local",
		Environment:    "dev",
		NotarySeal:     "WARDEN-FORENSIC-SEAL",
		Authority:      "warden-core",
		SealBatchLimit: 500,
		Logger:         logger,
	})
	module.Store = store
	return module
}
