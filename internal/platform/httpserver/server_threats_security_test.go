package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestThreatLogRequiresActorHeader(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/threats/v1/log", "",
		map[string]string{"description": "probe", "risk": "low", "pattern_id": "pat-1"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestThreatLogRejectsNonCoordinator(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/threats/v1/log", "random-user",
		map[string]string{"description": "probe", "risk": "low", "pattern_id": "pat-1"})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestThreatLogRejectsUnknownRisk(t *testing.T) {
	server := newTestServer()

	grantRole(t, server, "ops-1", "coordinator")
	rr := doRequest(t, server, http.MethodPost, "/api/threats/v1/log", "ops-1",
		map[string]string{"description": "probe", "risk": "apocalyptic", "pattern_id": "pat-1"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestThreatLogCriticalAutoRegistersPatternAndPinsSuspect(t *testing.T) {
	server := newTestServer()

	grantRole(t, server, "ops-1", "coordinator")
	rr := doRequest(t, server, http.MethodPost, "/api/threats/v1/log", "ops-1", map[string]string{
		"description": "drain signature",
		"risk":        "critical",
		"pattern_id":  "pat-drain",
		"suspect":     "mallory",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("log: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var logged struct {
		PatternRegistered bool `json:"pattern_registered"`
		SuspectPinned     bool `json:"suspect_pinned"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &logged); err != nil {
		t.Fatalf("decode log response: %v", err)
	}
	if !logged.PatternRegistered || !logged.SuspectPinned {
		t.Fatalf("expected auto-registration and pin, got %+v", logged)
	}

	rr = doRequest(t, server, http.MethodGet, "/api/threats/v1/suspects/mallory", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("suspect: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var score struct {
		Score uint8 `json:"score"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &score); err != nil {
		t.Fatalf("decode score: %v", err)
	}
	if score.Score != 100 {
		t.Fatalf("expected pinned score 100, got %d", score.Score)
	}

	// A second elevated sighting of the same pattern does not re-register.
	rr = doRequest(t, server, http.MethodPost, "/api/threats/v1/log", "ops-1", map[string]string{
		"description": "drain signature again",
		"risk":        "high",
		"pattern_id":  "pat-drain",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("second log: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &logged); err != nil {
		t.Fatalf("decode second log response: %v", err)
	}
	if logged.PatternRegistered {
		t.Fatalf("pattern re-registered on second sighting")
	}
}

func TestThreatPatternLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()
	grantRole(t, server, "ops-1", "coordinator")

	rr := doRequest(t, server, http.MethodPost, "/api/threats/v1/patterns", "ops-1",
		map[string]string{"pattern_id": "pat-manual", "description": "manual entry"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPost, "/api/threats/v1/patterns", "ops-1",
		map[string]string{"pattern_id": "pat-manual", "description": "manual entry"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodDelete, "/api/threats/v1/patterns/pat-manual", "ops-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodDelete, "/api/threats/v1/patterns/pat-manual", "ops-1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("remove missing: expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
