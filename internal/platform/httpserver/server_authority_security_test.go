package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestLockdownTriggerRequiresActorHeader(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/authority/v1/lockdown/trigger", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLockdownTriggerRejectsNonSovereign(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/authority/v1/lockdown/trigger", "random-user", nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLockdownLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/authority/v1/lockdown/trigger", sovereignActor, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("trigger: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/api/authority/v1/lockdown", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("state: expected 200, got %d", rr.Code)
	}
	var state struct {
		Active bool `json:"active"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode lockdown state: %v", err)
	}
	if !state.Active {
		t.Fatal("lockdown must read active after trigger")
	}

	// During lockdown every authority check denies, sovereign included.
	rr = doRequest(t, server, http.MethodPost, "/api/authority/v1/check", sovereignActor,
		map[string]string{"role": "coordinator", "actor": sovereignActor})
	if rr.Code != http.StatusOK {
		t.Fatalf("check: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var decision struct {
		Allowed bool `json:"allowed"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &decision); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if decision.Allowed {
		t.Fatal("authority checks must deny while lockdown is active")
	}

	rr = doRequest(t, server, http.MethodPost, "/api/authority/v1/lockdown/release", sovereignActor, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("release: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	// Released twice is a conflict, not a silent no-op.
	rr = doRequest(t, server, http.MethodPost, "/api/authority/v1/lockdown/release", sovereignActor, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("double release: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRoleGrantRequiresSovereign(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost,
		"/api/authority/v1/actors/user-1/roles/grant",
		"random-user",
		map[string]string{"role": "auditor"},
	)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSectorToggleRequiresCoordinatorTier(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPut,
		"/api/authority/v1/sectors/treasury",
		"random-user",
		map[string]bool{"enabled": false},
	)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	grantRole(t, server, "ops-1", "coordinator")
	rr = doRequest(t, server, http.MethodPut,
		"/api/authority/v1/sectors/treasury",
		"ops-1",
		map[string]bool{"enabled": false},
	)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}
