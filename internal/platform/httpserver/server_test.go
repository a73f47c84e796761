package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	accesscoordinator "warden/contexts/access-control/access-coordinator"
	coordaudit "warden/contexts/access-control/access-coordinator/adapters/audit"
	forensicledger "warden/contexts/audit-core/forensic-ledger"
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
	"warden/internal/platform/messaging"
	"warden/internal/platform/pauseguard"
)

// sovereignActor is the identity pre-seeded with the sovereign tag by the
// in-memory coordinator store.
const sovereignActor = "system-root"

func newTestServer() *Server {
	logger := slog.Default()
	bus := messaging.NewBus(logger)
	pause := &pauseguard.Guard{}

	ledger := forensicledger.NewInMemoryModule(logger, bus)
	coordinator := accesscoordinator.NewInMemoryModule(
		logger,
		coordaudit.Recorder{Ledger: ledger.Record},
		pause,
	)

	breakerBridge := breakerauthority.Bridge{
		CheckAuthority: coordinator.CheckAuthority,
		EmergencyPause: coordinator.EmergencyPause,
	}

	modules := Modules{
		Ledger:      ledger,
		Coordinator: coordinator,
		Breaker: circuitbreaker.NewInMemoryModule(
			logger,
			breakerBridge,
			breakeraudit.Recorder{Ledger: ledger.Record},
			breakerBridge,
		),
		Threats: threatsurface.NewInMemoryModule(
			logger,
			threatauthority.Bridge{CheckAuthority: coordinator.CheckAuthority},
			threataudit.Recorder{Ledger: ledger.Record},
		),
		Sentinel: sentinelexecutor.NewInMemoryModule(
			logger,
			pause,
			sentinelauthority.Bridge{CheckAuthority: coordinator.CheckAuthority},
			sentinelaudit.Recorder{Ledger: ledger.Record},
		),
		Authorizer: upgradeauthorizer.NewInMemoryModule(
			logger,
			upgradeauthority.Bridge{CheckAuthority: coordinator.CheckAuthority},
			upgradeaudit.Recorder{Ledger: ledger.Record},
		),
		Compensation: compensationworkflow.NewInMemoryModule(
			logger,
			compauthority.Bridge{CheckAuthority: coordinator.CheckAuthority},
			compaudit.Recorder{Ledger: ledger.Record},
		),
	}

	return New(modules, logger, ":0", nil)
}

func doRequest(t *testing.T, server *Server, method string, path string, actor string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set("X-Actor-Id", actor)
	}

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

// grantRole assigns one capability tag through the public surface, acting as
// the bootstrap sovereign.
func grantRole(t *testing.T, server *Server, actor string, role string) {
	t.Helper()

	rr := doRequest(t, server, http.MethodPost,
		"/api/authority/v1/actors/"+actor+"/roles/grant",
		sovereignActor,
		map[string]string{"role": role},
	)
	if rr.Code != http.StatusOK {
		t.Fatalf("grant %s to %s: expected 200, got %d body=%s", role, actor, rr.Code, rr.Body.String())
	}
}
