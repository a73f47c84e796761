package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	accesscoordinator "warden/contexts/access-control/access-coordinator"
	forensicledger "warden/contexts/audit-core/forensic-ledger"
	compensationworkflow "warden/contexts/governance/compensation-workflow"
	upgradeauthorizer "warden/contexts/governance/upgrade-authorizer"
	circuitbreaker "warden/contexts/threat-response/circuit-breaker"
	sentinelexecutor "warden/contexts/threat-response/sentinel-executor"
	threatsurface "warden/contexts/threat-response/threat-surface"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "warden/internal/platform/httpserver/docs"
)

// Modules collects every bounded-context composition root served by one
// process.
type Modules struct {
	Ledger       forensicledger.Module
	Coordinator  accesscoordinator.Module
	Breaker      circuitbreaker.Module
	Threats      threatsurface.Module
	Sentinel     sentinelexecutor.Module
	Authorizer   upgradeauthorizer.Module
	Compensation compensationworkflow.Module
}

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	modules Modules
}

func New(modules Modules, logger *slog.Logger, addr string, metricsHandler http.Handler) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		modules: modules,
	}
	s.registerRoutes(metricsHandler)
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes(metricsHandler http.Handler) {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if metricsHandler != nil {
		s.mux.Handle("GET /metrics", metricsHandler)
	}

	s.mux.HandleFunc("POST /api/ledger/v1/records", s.handleLedgerRecordEvent)
	s.mux.HandleFunc("GET /api/ledger/v1/records/{sequence_id}", s.handleLedgerGetRecord)
	s.mux.HandleFunc("GET /api/ledger/v1/records", s.handleLedgerListRecords)
	s.mux.HandleFunc("POST /api/ledger/v1/seals", s.handleLedgerSealSegment)
	s.mux.HandleFunc("GET /api/ledger/v1/seals", s.handleLedgerListSeals)

	s.mux.HandleFunc("POST /api/authority/v1/check", s.handleAuthorityCheck)
	s.mux.HandleFunc("GET /api/authority/v1/lockdown", s.handleAuthorityLockdownState)
	s.mux.HandleFunc("POST /api/authority/v1/lockdown/trigger", s.handleAuthorityTriggerLockdown)
	s.mux.HandleFunc("POST /api/authority/v1/lockdown/release", s.handleAuthorityReleaseLockdown)
	s.mux.HandleFunc("POST /api/authority/v1/emergency-pause", s.handleAuthorityEmergencyPause)
	s.mux.HandleFunc("PUT /api/authority/v1/sectors/{sector_id}", s.handleAuthoritySetSectorStatus)
	s.mux.HandleFunc("GET /api/authority/v1/sectors", s.handleAuthorityListSectors)
	s.mux.HandleFunc("POST /api/authority/v1/actors/{actor_id}/roles/grant", s.handleAuthorityGrantRole)
	s.mux.HandleFunc("POST /api/authority/v1/actors/{actor_id}/roles/revoke", s.handleAuthorityRevokeRole)
	s.mux.HandleFunc("GET /api/authority/v1/actors/{actor_id}/roles", s.handleAuthorityListActorRoles)

	s.mux.HandleFunc("POST /api/breaker/v1/observe", s.handleBreakerObserve)
	s.mux.HandleFunc("PUT /api/breaker/v1/threshold", s.handleBreakerUpdateThreshold)
	s.mux.HandleFunc("POST /api/breaker/v1/reset", s.handleBreakerManualReset)
	s.mux.HandleFunc("GET /api/breaker/v1/window", s.handleBreakerGetWindow)

	s.mux.HandleFunc("POST /api/threats/v1/log", s.handleThreatsLog)
	s.mux.HandleFunc("POST /api/threats/v1/patterns", s.handleThreatsRegisterPattern)
	s.mux.HandleFunc("DELETE /api/threats/v1/patterns/{pattern_id}", s.handleThreatsRemovePattern)
	s.mux.HandleFunc("GET /api/threats/v1/patterns", s.handleThreatsListPatterns)
	s.mux.HandleFunc("GET /api/threats/v1/suspects/{actor_id}", s.handleThreatsSuspectScore)
	s.mux.HandleFunc("GET /api/threats/v1/history", s.handleThreatsHistory)

	s.mux.HandleFunc("POST /api/sentinel/v1/evaluate", s.handleSentinelEvaluate)
	s.mux.HandleFunc("PUT /api/sentinel/v1/threshold", s.handleSentinelUpdateThreshold)
	s.mux.HandleFunc("GET /api/sentinel/v1/status", s.handleSentinelStatus)

	s.mux.HandleFunc("POST /api/upgrades/v1/approvals", s.handleUpgradesApprove)
	s.mux.HandleFunc("POST /api/upgrades/v1/validate", s.handleUpgradesValidate)
	s.mux.HandleFunc("PUT /api/upgrades/v1/required-approvals", s.handleUpgradesSetRequiredApprovals)
	s.mux.HandleFunc("PUT /api/upgrades/v1/min-interval", s.handleUpgradesSetMinInterval)
	s.mux.HandleFunc("GET /api/upgrades/v1/candidates/{candidate_id}", s.handleUpgradesCandidateStatus)

	s.mux.HandleFunc("POST /api/compensation/v1/proposals", s.handleCompensationPropose)
	s.mux.HandleFunc("POST /api/compensation/v1/proposals/{proposal_id}/approve", s.handleCompensationApprove)
	s.mux.HandleFunc("POST /api/compensation/v1/proposals/{proposal_id}/execute", s.handleCompensationExecute)
	s.mux.HandleFunc("GET /api/compensation/v1/proposals/{proposal_id}", s.handleCompensationGetProposal)
	s.mux.HandleFunc("GET /api/compensation/v1/proposals", s.handleCompensationListProposals)
	s.mux.HandleFunc("GET /api/compensation/v1/reserve", s.handleCompensationReserveBalance)
}

// actorID resolves the caller identity carried in the X-Actor-Id header.
func actorID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Actor-Id"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, onError func(w http.ResponseWriter, status int, code string, message string)) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		onError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}
