package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	ledgererrors "warden/contexts/audit-core/forensic-ledger/domain/errors"
	ledgerhttp "warden/contexts/audit-core/forensic-ledger/transport/http"
)

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrMissingSource),
		errors.Is(err, ledgererrors.ErrMissingCategory),
		errors.Is(err, ledgererrors.ErrInvalidSeverity),
		errors.Is(err, ledgererrors.ErrInvalidRiskScore),
		errors.Is(err, ledgererrors.ErrInvalidFingerprint):
		writeLedgerError(w, http.StatusBadRequest, "invalid_record", err.Error())
	case errors.Is(err, ledgererrors.ErrRecordNotFound),
		errors.Is(err, ledgererrors.ErrSealNotFound):
		writeLedgerError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrSequenceGap):
		writeLedgerError(w, http.StatusConflict, "sequence_conflict", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleLedgerRecordEvent(w http.ResponseWriter, r *http.Request) {
	var req ledgerhttp.RecordEventRequest
	if !decodeJSON(w, r, &req, writeLedgerError) {
		return
	}
	if actor := actorID(r); actor != "" && req.Actor == "" {
		req.Actor = actor
	}

	resp, err := s.modules.Ledger.Handler.RecordEventHandler(r.Context(), req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLedgerGetRecord(w http.ResponseWriter, r *http.Request) {
	sequenceID, err := strconv.ParseUint(r.PathValue("sequence_id"), 10, 64)
	if err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_sequence_id", "sequence_id must be an unsigned integer")
		return
	}

	resp, err := s.modules.Ledger.Handler.GetRecordHandler(r.Context(), sequenceID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedgerListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var fromSequence uint64
	if raw := query.Get("from_sequence"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeLedgerError(w, http.StatusBadRequest, "invalid_from_sequence", "from_sequence must be an unsigned integer")
			return
		}
		fromSequence = parsed
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeLedgerError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.modules.Ledger.Handler.ListRecordsHandler(r.Context(), fromSequence, limit)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedgerSealSegment(w http.ResponseWriter, r *http.Request) {
	var req ledgerhttp.SealRequest
	if r.ContentLength > 0 {
		if !decodeJSON(w, r, &req, writeLedgerError) {
			return
		}
	}

	resp, err := s.modules.Ledger.Handler.SealSegmentHandler(r.Context(), req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLedgerListSeals(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Ledger.Handler.ListSealsHandler(r.Context())
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
