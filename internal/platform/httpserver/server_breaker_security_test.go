package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestBreakerThresholdUpdateRequiresActorHeader(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPut, "/api/breaker/v1/threshold", "",
		map[string]uint64{"threshold": 500})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestBreakerThresholdUpdateRejectsNonCoordinator(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPut, "/api/breaker/v1/threshold", "random-user",
		map[string]uint64{"threshold": 500})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestBreakerObserveBreachReturnsUnprocessable(t *testing.T) {
	server := newTestServer()

	grantRole(t, server, "ops-1", "coordinator")
	rr := doRequest(t, server, http.MethodPut, "/api/breaker/v1/threshold", "ops-1",
		map[string]uint64{"threshold": 100})
	if rr.Code != http.StatusOK {
		t.Fatalf("threshold: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPost, "/api/breaker/v1/observe", "",
		map[string]uint64{"amount": 101})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("breach: expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}

	// The breached amount never commits.
	rr = doRequest(t, server, http.MethodGet, "/api/breaker/v1/window", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("window: expected 200, got %d", rr.Code)
	}
	var window struct {
		CurrentVolume uint64 `json:"current_volume"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &window); err != nil {
		t.Fatalf("decode window: %v", err)
	}
	if window.CurrentVolume != 0 {
		t.Fatalf("breached amount committed: volume %d", window.CurrentVolume)
	}
}

func TestBreakerManualResetRequiresCoordinator(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/breaker/v1/reset", "random-user", nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}
