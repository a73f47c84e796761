package accesscoordinator

import (
	"log/slog"

	httpadapter "warden/contexts/access-control/access-coordinator/adapters/http"
	"warden/contexts/access-control/access-coordinator/adapters/memory"
	"warden/contexts/access-control/access-coordinator/application/commands"
	"warden/contexts/access-control/access-coordinator/application/queries"
	"warden/contexts/access-control/access-coordinator/ports"
)

// Module is the access-coordinator composition root. CheckAuthority,
// HasSovereign and EmergencyPause are exported so authority bridges in other
// modules can route through a single decision point.
type Module struct {
	Handler        httpadapter.Handler
	CheckAuthority queries.CheckAuthorityUseCase
	HasSovereign   queries.HasSovereignPowerUseCase
	EmergencyPause commands.TriggerEmergencyPauseUseCase
	Store          *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository ports.Repository
	Recorder   ports.AuditRecorder
	PauseGuard ports.PauseGuard
	Clock      ports.Clock

	Logger *slog.Logger
}

// NewModule wires authority use-cases and the transport handler using explicit ports.
func NewModule(deps Dependencies) Module {
	checkAuthority := queries.CheckAuthorityUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	hasSovereign := queries.HasSovereignPowerUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	emergencyPause := commands.TriggerEmergencyPauseUseCase{
		Repository: deps.Repository,
		Recorder:   deps.Recorder,
		PauseGuard: deps.PauseGuard,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}

	handler := httpadapter.Handler{
		CheckAuthority: checkAuthority,
		SovereignPower: hasSovereign,
		LockdownState: queries.LockdownStateUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		ListSectors: queries.ListSectorsUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		ListActorRoles: queries.ListActorRolesUseCase{
			Repository: deps.Repository,
			Logger:     deps.Logger,
		},
		TriggerLockdown: commands.TriggerLockdownUseCase{
			Repository: deps.Repository,
			Recorder:   deps.Recorder,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		ReleaseLockdown: commands.ReleaseLockdownUseCase{
			Repository: deps.Repository,
			Recorder:   deps.Recorder,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		EmergencyPause: emergencyPause,
		SetSectorStatus: commands.SetSectorStatusUseCase{
			Repository: deps.Repository,
			Recorder:   deps.Recorder,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		GrantRole: commands.GrantRoleUseCase{
			Repository: deps.Repository,
			Recorder:   deps.Recorder,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		RevokeRole: commands.RevokeRoleUseCase{
			Repository: deps.Repository,
			Recorder:   deps.Recorder,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{
		Handler:        handler,
		CheckAuthority: checkAuthority,
		HasSovereign:   hasSovereign,
		EmergencyPause: emergencyPause,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. The store comes pre-seeded with the bootstrap sovereign.
func NewInMemoryModule(logger *slog.Logger, recorder ports.AuditRecorder, pause ports.PauseGuard) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Recorder:   recorder,
		PauseGuard: pause,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
