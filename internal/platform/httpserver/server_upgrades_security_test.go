package httpserver

import (
	"net/http"
	"testing"
)

func TestUpgradeApprovalRequiresActorHeader(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/upgrades/v1/approvals", "",
		map[string]string{"candidate": "logic-v2"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpgradeApprovalRejectsNonAdmin(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/upgrades/v1/approvals", "random-user",
		map[string]string{"candidate": "logic-v2"})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpgradeDuplicateApprovalConflicts(t *testing.T) {
	server := newTestServer()
	grantRole(t, server, "admin-1", "upgrade_admin")

	rr := doRequest(t, server, http.MethodPost, "/api/upgrades/v1/approvals", "admin-1",
		map[string]string{"candidate": "logic-v2"})
	if rr.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPost, "/api/upgrades/v1/approvals", "admin-1",
		map[string]string{"candidate": "logic-v2"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate approve: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpgradeValidateBelowQuorumUnprocessable(t *testing.T) {
	server := newTestServer()
	grantRole(t, server, "admin-1", "upgrade_admin")

	rr := doRequest(t, server, http.MethodPost, "/api/upgrades/v1/validate", "admin-1",
		map[string]string{"candidate": "logic-v2"})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpgradeQuorumChangeRequiresSovereign(t *testing.T) {
	server := newTestServer()
	grantRole(t, server, "admin-1", "upgrade_admin")

	rr := doRequest(t, server, http.MethodPut, "/api/upgrades/v1/required-approvals", "admin-1",
		map[string]int{"required": 1})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}
