package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestCompensationProposeRequiresActorHeader(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/compensation/v1/proposals", "",
		map[string]any{"victim": "victim-1", "amount": 100})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCompensationProposeRejectsNonSovereign(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/compensation/v1/proposals", "random-user",
		map[string]any{"victim": "victim-1", "amount": 100})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCompensationWorkflowOverHTTP(t *testing.T) {
	server := newTestServer()
	grantRole(t, server, "auditor-1", "auditor")

	rr := doRequest(t, server, http.MethodPost, "/api/compensation/v1/proposals", sovereignActor,
		map[string]any{"victim": "victim-1", "amount": 2500})
	if rr.Code != http.StatusCreated {
		t.Fatalf("propose: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var proposal struct {
		ProposalID string `json:"proposal_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &proposal); err != nil {
		t.Fatalf("decode proposal: %v", err)
	}

	// Executing before approval must fail without moving funds.
	rr = doRequest(t, server, http.MethodPost,
		"/api/compensation/v1/proposals/"+proposal.ProposalID+"/execute", "anyone", nil)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("premature execute: expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPost,
		"/api/compensation/v1/proposals/"+proposal.ProposalID+"/approve", "auditor-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPost,
		"/api/compensation/v1/proposals/"+proposal.ProposalID+"/execute", "anyone", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("execute: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	// The one-way latch turns a replayed execute into a conflict.
	rr = doRequest(t, server, http.MethodPost,
		"/api/compensation/v1/proposals/"+proposal.ProposalID+"/execute", "anyone", nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("double execute: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}
