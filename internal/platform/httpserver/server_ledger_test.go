package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestLedgerRecordRoundTrip(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/ledger/v1/records", "reporter-1",
		map[string]any{
			"source":     "test/reporter",
			"severity":   "warning",
			"category":   "unit_test",
			"detail":     "round trip",
			"risk_score": 10,
		})
	if rr.Code != http.StatusCreated {
		t.Fatalf("record: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created struct {
		SequenceID uint64 `json:"sequence_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode record response: %v", err)
	}

	rr = doRequest(t, server, http.MethodGet, "/api/ledger/v1/records/1000000", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing record: expected 404, got %d", rr.Code)
	}

	rr = doRequest(t, server, http.MethodGet, "/api/ledger/v1/records", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rr.Code)
	}
	var page struct {
		Records []struct {
			SequenceID uint64 `json:"sequence_id"`
			Category   string `json:"category"`
		} `json:"records"`
		Total uint64 `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	found := false
	for _, record := range page.Records {
		if record.SequenceID == created.SequenceID && record.Category == "unit_test" {
			found = true
		}
	}
	if !found {
		t.Fatalf("appended record missing from listing: %s", rr.Body.String())
	}
}

func TestLedgerRejectsInvalidSeverity(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/ledger/v1/records", "reporter-1",
		map[string]any{
			"source":   "test/reporter",
			"severity": "catastrophic",
			"category": "unit_test",
		})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLedgerSealProducesCertificate(t *testing.T) {
	server := newTestServer()

	for _, category := range []string{"one", "two"} {
		rr := doRequest(t, server, http.MethodPost, "/api/ledger/v1/records", "reporter-1",
			map[string]any{
				"source":   "test/reporter",
				"severity": "info",
				"category": category,
			})
		if rr.Code != http.StatusCreated {
			t.Fatalf("record %s: expected 201, got %d", category, rr.Code)
		}
	}

	rr := doRequest(t, server, http.MethodPost, "/api/ledger/v1/seals", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("seal: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var sealed struct {
		Sealed      bool `json:"sealed"`
		Certificate *struct {
			Fingerprint  string `json:"fingerprint"`
			FromSequence uint64 `json:"from_sequence"`
			ToSequence   uint64 `json:"to_sequence"`
		} `json:"certificate"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &sealed); err != nil {
		t.Fatalf("decode seal response: %v", err)
	}
	if !sealed.Sealed || sealed.Certificate == nil {
		t.Fatalf("expected a certificate, got %s", rr.Body.String())
	}

	// Nothing new to seal: a second pass is a no-op, not an error.
	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/seals", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("idle seal: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &sealed); err != nil {
		t.Fatalf("decode idle seal response: %v", err)
	}
	if sealed.Sealed {
		t.Fatal("idle pass must not produce a certificate")
	}
}
