package accesscoordinator_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	accesscoordinator "warden/contexts/access-control/access-coordinator"
	"warden/contexts/access-control/access-coordinator/adapters/memory"
	"warden/contexts/access-control/access-coordinator/application/commands"
	"warden/contexts/access-control/access-coordinator/application/queries"
	"warden/contexts/access-control/access-coordinator/domain/entities"
	domainerrors "warden/contexts/access-control/access-coordinator/domain/errors"
	"warden/contexts/access-control/access-coordinator/ports"
	"warden/internal/platform/pauseguard"
)

// capturingRecorder is a test double for the mandatory audit trail.
type capturingRecorder struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
	fail    bool
	next    uint64
}

func (r *capturingRecorder) RecordSecurityEvent(_ context.Context, entry ports.AuditEntry) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return 0, errors.New("audit sink unavailable")
	}
	r.entries = append(r.entries, entry)
	seq := r.next
	r.next++
	return seq, nil
}

func (r *capturingRecorder) byCategory(category string) []ports.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ports.AuditEntry
	for _, entry := range r.entries {
		if entry.Category == category {
			out = append(out, entry)
		}
	}
	return out
}

func newTestModule(t *testing.T) (accesscoordinator.Module, *capturingRecorder, *pauseguard.Guard) {
	t.Helper()
	recorder := &capturingRecorder{}
	pause := pauseguard.New()
	module := accesscoordinator.NewInMemoryModule(slog.Default(), recorder, pause)
	return module, recorder, pause
}

func TestLockdownDeniesEveryRoleUntilSovereignRelease(t *testing.T) {
	ctx := context.Background()
	module, recorder, _ := newTestModule(t)

	if err := module.Store.GrantRole(ctx, "ops-1", entities.RoleCoordinator, module.Store.Now()); err != nil {
		t.Fatalf("seed coordinator role: %v", err)
	}

	decision, err := module.CheckAuthority.Execute(ctx, queries.CheckAuthorityQuery{Actor: "ops-1", Role: "coordinator"})
	if err != nil {
		t.Fatalf("pre-lockdown check: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected explicit grant to pass before lockdown, got reason %q", decision.Reason)
	}

	if err := module.Handler.TriggerLockdown.Execute(ctx, memory.BootstrapSovereign); err != nil {
		t.Fatalf("trigger lockdown: %v", err)
	}

	for _, role := range entities.Roles() {
		for _, actor := range []string{"ops-1", memory.BootstrapSovereign, "nobody"} {
			decision, err := module.CheckAuthority.Execute(ctx, queries.CheckAuthorityQuery{Actor: actor, Role: string(role)})
			if err != nil {
				t.Fatalf("lockdown check actor=%s role=%s: %v", actor, role, err)
			}
			if decision.Allowed {
				t.Fatalf("lockdown must deny actor=%s role=%s", actor, role)
			}
			if decision.Reason != entities.ReasonLockdownActive {
				t.Fatalf("expected lockdown reason, got %q", decision.Reason)
			}
		}
	}

	// Sovereign resolution stays truthful during lockdown so release works.
	sovereign, err := module.HasSovereign.Execute(ctx, memory.BootstrapSovereign)
	if err != nil {
		t.Fatalf("sovereign check during lockdown: %v", err)
	}
	if !sovereign {
		t.Fatal("sovereign power must remain resolvable during lockdown")
	}

	if err := module.Handler.ReleaseLockdown.Execute(ctx, memory.BootstrapSovereign); err != nil {
		t.Fatalf("release lockdown: %v", err)
	}

	decision, err = module.CheckAuthority.Execute(ctx, queries.CheckAuthorityQuery{Actor: "ops-1", Role: "coordinator"})
	if err != nil {
		t.Fatalf("post-release check: %v", err)
	}
	if !decision.Allowed {
		t.Fatal("explicit grant must pass again after release")
	}

	if got := len(recorder.byCategory("lockdown_triggered")); got != 1 {
		t.Fatalf("expected 1 lockdown_triggered record, got %d", got)
	}
	if got := len(recorder.byCategory("lockdown_released")); got != 1 {
		t.Fatalf("expected 1 lockdown_released record, got %d", got)
	}
}

func TestNonSovereignCannotTriggerOrReleaseLockdown(t *testing.T) {
	ctx := context.Background()
	module, _, _ := newTestModule(t)

	if err := module.Store.GrantRole(ctx, "ops-1", entities.RoleCoordinator, module.Store.Now()); err != nil {
		t.Fatalf("seed coordinator role: %v", err)
	}

	if err := module.Handler.TriggerLockdown.Execute(ctx, "ops-1"); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-sovereign trigger, got %v", err)
	}

	if err := module.Handler.TriggerLockdown.Execute(ctx, memory.BootstrapSovereign); err != nil {
		t.Fatalf("trigger lockdown: %v", err)
	}
	if err := module.Handler.ReleaseLockdown.Execute(ctx, "ops-1"); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-sovereign release, got %v", err)
	}

	// Double trigger is a distinct error from an authority failure.
	if err := module.Handler.TriggerLockdown.Execute(ctx, memory.BootstrapSovereign); !errors.Is(err, domainerrors.ErrLockdownActive) {
		t.Fatalf("expected ErrLockdownActive, got %v", err)
	}
}

func TestLockdownRevertsWhenAuditWriteFails(t *testing.T) {
	ctx := context.Background()
	module, recorder, _ := newTestModule(t)

	recorder.fail = true
	if err := module.Handler.TriggerLockdown.Execute(ctx, memory.BootstrapSovereign); err == nil {
		t.Fatal("expected trigger to fail when the audit sink is down")
	}

	locked, err := module.Store.LockdownState(ctx)
	if err != nil {
		t.Fatalf("lockdown state: %v", err)
	}
	if locked {
		t.Fatal("lockdown must roll back when the mandatory record cannot be written")
	}
}

func TestEmergencyPauseRequiresSentinelTier(t *testing.T) {
	ctx := context.Background()
	module, recorder, pause := newTestModule(t)

	cmd := commands.TriggerEmergencyPauseCommand{Actor: "watcher-7", Reason: "volume spike on bridge"}
	if err := module.EmergencyPause.Execute(ctx, cmd); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized without sentinel role, got %v", err)
	}
	if paused, _ := pause.IsPaused(ctx); paused {
		t.Fatal("denied escalation must not engage the pause guard")
	}

	if err := module.Store.GrantRole(ctx, "watcher-7", entities.RoleSentinel, module.Store.Now()); err != nil {
		t.Fatalf("seed sentinel role: %v", err)
	}
	if err := module.EmergencyPause.Execute(ctx, cmd); err != nil {
		t.Fatalf("sentinel escalation: %v", err)
	}
	if paused, _ := pause.IsPaused(ctx); !paused {
		t.Fatal("sentinel escalation must engage the pause guard")
	}

	records := recorder.byCategory("emergency_pause")
	if len(records) != 1 {
		t.Fatalf("expected 1 emergency_pause record, got %d", len(records))
	}
	if records[0].Severity != "emergency" || !records[0].ActionRequired {
		t.Fatalf("escalation must be recorded at emergency severity with action required, got %+v", records[0])
	}
}

func TestEmergencyPauseRollsBackWhenAuditWriteFails(t *testing.T) {
	ctx := context.Background()
	module, recorder, pause := newTestModule(t)

	if err := module.Store.GrantRole(ctx, "watcher-7", entities.RoleSentinel, module.Store.Now()); err != nil {
		t.Fatalf("seed sentinel role: %v", err)
	}
	recorder.fail = true

	err := module.EmergencyPause.Execute(ctx, commands.TriggerEmergencyPauseCommand{Actor: "watcher-7", Reason: "spike"})
	if err == nil {
		t.Fatal("expected escalation to fail when the audit sink is down")
	}
	if paused, _ := pause.IsPaused(ctx); paused {
		t.Fatal("pause must roll back when the mandatory record cannot be written")
	}
}

func TestSectorToggleIsRecordedAtWarning(t *testing.T) {
	ctx := context.Background()
	module, recorder, _ := newTestModule(t)

	status, err := module.Handler.SetSectorStatus.Execute(ctx, commands.SetSectorStatusCommand{
		Actor:    memory.BootstrapSovereign,
		SectorID: "bridge",
		Enabled:  false,
	})
	if err != nil {
		t.Fatalf("set sector status: %v", err)
	}
	if status.Enabled {
		t.Fatal("bridge sector should be disabled")
	}
	if status.UpdatedBy != memory.BootstrapSovereign {
		t.Fatalf("unexpected UpdatedBy %q", status.UpdatedBy)
	}

	sectors, err := module.Store.ListSectors(ctx)
	if err != nil {
		t.Fatalf("list sectors: %v", err)
	}
	found := false
	for _, sector := range sectors {
		if sector.SectorID == "bridge" {
			found = true
			if sector.Enabled {
				t.Fatal("stored bridge sector should be disabled")
			}
		}
	}
	if !found {
		t.Fatal("bridge sector missing from listing")
	}

	records := recorder.byCategory("sector_status_changed")
	if len(records) != 1 {
		t.Fatalf("expected 1 sector_status_changed record, got %d", len(records))
	}
	if records[0].Severity != "warning" {
		t.Fatalf("sector toggles record at warning severity, got %q", records[0].Severity)
	}
}

func TestSectorToggleRequiresCoordinatorTier(t *testing.T) {
	ctx := context.Background()
	module, _, _ := newTestModule(t)

	_, err := module.Handler.SetSectorStatus.Execute(ctx, commands.SetSectorStatusCommand{
		Actor:    "random-user",
		SectorID: "swap",
		Enabled:  false,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDuplicateRoleGrantIsRejected(t *testing.T) {
	ctx := context.Background()
	module, recorder, _ := newTestModule(t)

	grant := commands.GrantRoleCommand{
		AdminActor: memory.BootstrapSovereign,
		Actor:      "auditor-9",
		Role:       "auditor",
	}
	if err := module.Handler.GrantRole.Execute(ctx, grant); err != nil {
		t.Fatalf("first grant: %v", err)
	}
	if err := module.Handler.GrantRole.Execute(ctx, grant); !errors.Is(err, domainerrors.ErrRoleAlreadyGranted) {
		t.Fatalf("expected ErrRoleAlreadyGranted, got %v", err)
	}

	if got := len(recorder.byCategory("role_granted")); got != 1 {
		t.Fatalf("rejected duplicate must not produce a second record, got %d", got)
	}

	if err := module.Handler.RevokeRole.Execute(ctx, commands.RevokeRoleCommand{
		AdminActor: memory.BootstrapSovereign,
		Actor:      "auditor-9",
		Role:       "auditor",
	}); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := module.Handler.RevokeRole.Execute(ctx, commands.RevokeRoleCommand{
		AdminActor: memory.BootstrapSovereign,
		Actor:      "auditor-9",
		Role:       "auditor",
	}); !errors.Is(err, domainerrors.ErrRoleNotGranted) {
		t.Fatalf("expected ErrRoleNotGranted, got %v", err)
	}
}

func TestUnknownRoleNameIsRejected(t *testing.T) {
	ctx := context.Background()
	module, _, _ := newTestModule(t)

	_, err := module.CheckAuthority.Execute(ctx, queries.CheckAuthorityQuery{Actor: "ops-1", Role: "emperor"})
	if !errors.Is(err, domainerrors.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
