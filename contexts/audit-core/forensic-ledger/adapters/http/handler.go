package httpadapter

import (
	"context"
	"log/slog"

	application "warden/contexts/audit-core/forensic-ledger/application"
	"warden/contexts/audit-core/forensic-ledger/application/commands"
	"warden/contexts/audit-core/forensic-ledger/application/queries"
	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	domainerrors "warden/contexts/audit-core/forensic-ledger/domain/errors"
	httptransport "warden/contexts/audit-core/forensic-ledger/transport/http"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	RecordEvent commands.RecordEventUseCase
	SealSegment commands.SealSegmentUseCase
	GetRecord   queries.GetRecordUseCase
	ListRecords queries.ListRecordsUseCase
	ListSeals   queries.ListSealsUseCase
	Logger      *slog.Logger
}

// RecordEventHandler appends one audit record.
func (h Handler) RecordEventHandler(
	ctx context.Context,
	request httptransport.RecordEventRequest,
) (httptransport.RecordEventResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	severity, ok := entities.ParseSeverity(request.Severity)
	if !ok {
		return httptransport.RecordEventResponse{}, domainerrors.ErrInvalidSeverity
	}

	result, err := h.RecordEvent.Execute(ctx, commands.RecordEventCommand{
		Source:           request.Source,
		Actor:            request.Actor,
		Origin:           request.Origin,
		Counterparty:     request.Counterparty,
		Severity:         severity,
		Category:         request.Category,
		Detail:           request.Detail,
		RiskScore:        request.RiskScore,
		BlockHeight:      request.BlockHeight,
		ResourceUsage:    request.ResourceUsage,
		ValueMoved:       request.ValueMoved,
		StateFingerprint: request.StateFingerprint,
		TxFingerprint:    request.TxFingerprint,
		SelectorTag:      request.SelectorTag,
		ActionRequired:   request.ActionRequired,
		UpgradedLogic:    request.UpgradedLogic,
		CorrelationID:    request.CorrelationID,
		PolicyHash:       request.PolicyHash,
		Metadata:         request.Metadata,
		Proof:            request.Proof,
	})
	if err != nil {
		logger.Error("http record event failed",
			"event", "ledger_http_record_failed",
			"module", "audit-core/forensic-ledger",
			"layer", "transport",
			"source", request.Source,
			"category", request.Category,
			"error", err.Error(),
		)
		return httptransport.RecordEventResponse{}, err
	}
	return httptransport.RecordEventResponse{
		SequenceID:    result.SequenceID,
		ReporterNonce: result.ReporterNonce,
		OccurredAt:    result.OccurredAt,
	}, nil
}

// GetRecordHandler resolves one record by sequence id.
func (h Handler) GetRecordHandler(ctx context.Context, sequenceID uint64) (httptransport.RecordDTO, error) {
	record, err := h.GetRecord.Execute(ctx, sequenceID)
	if err != nil {
		return httptransport.RecordDTO{}, err
	}
	return toRecordDTO(record), nil
}

// ListRecordsHandler returns one sequence-ordered page.
func (h Handler) ListRecordsHandler(
	ctx context.Context,
	fromSequence uint64,
	limit int,
) (httptransport.ListRecordsResponse, error) {
	result, err := h.ListRecords.Execute(ctx, queries.ListRecordsQuery{
		FromSequence: fromSequence,
		Limit:        limit,
	})
	if err != nil {
		return httptransport.ListRecordsResponse{}, err
	}

	items := make([]httptransport.RecordDTO, 0, len(result.Records))
	for _, record := range result.Records {
		items = append(items, toRecordDTO(record))
	}
	return httptransport.ListRecordsResponse{Records: items, Total: result.Total}, nil
}

// SealSegmentHandler runs one sealing pass over the unsealed tail.
func (h Handler) SealSegmentHandler(
	ctx context.Context,
	request httptransport.SealRequest,
) (httptransport.SealResponse, error) {
	logger := application.ResolveLogger(h.Logger)

	result, err := h.SealSegment.Execute(ctx, commands.SealSegmentCommand{
		BatchLimit: request.BatchLimit,
	})
	if err != nil {
		logger.Error("http seal segment failed",
			"event", "ledger_http_seal_failed",
			"module", "audit-core/forensic-ledger",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.SealResponse{}, err
	}
	if !result.Sealed {
		return httptransport.SealResponse{Sealed: false}, nil
	}
	cert := toSealDTO(result.Certificate)
	return httptransport.SealResponse{Sealed: true, Certificate: &cert}, nil
}

// ListSealsHandler returns all certificates in sealing order.
func (h Handler) ListSealsHandler(ctx context.Context) (httptransport.ListSealsResponse, error) {
	seals, err := h.ListSeals.Execute(ctx)
	if err != nil {
		return httptransport.ListSealsResponse{}, err
	}
	items := make([]httptransport.SealCertificateDTO, 0, len(seals))
	for _, cert := range seals {
		items = append(items, toSealDTO(cert))
	}
	return httptransport.ListSealsResponse{Seals: items}, nil
}

func toRecordDTO(record entities.ForensicRecord) httptransport.RecordDTO {
	return httptransport.RecordDTO{
		Source:           record.Source,
		Actor:            record.Actor,
		Origin:           record.Origin,
		Counterparty:     record.Counterparty,
		Severity:         record.Severity.String(),
		Category:         record.Category,
		Detail:           record.Detail,
		RiskScore:        record.RiskScore,
		ReporterNonce:    record.ReporterNonce,
		NetworkID:        record.NetworkID,
		BlockHeight:      record.BlockHeight,
		OccurredAt:       record.OccurredAt,
		ResourceUsage:    record.ResourceUsage,
		ValueMoved:       record.ValueMoved,
		StateFingerprint: record.StateFingerprint,
		TxFingerprint:    record.TxFingerprint,
		SelectorTag:      record.SelectorTag,
		SchemaVersion:    record.SchemaVersion,
		ActionRequired:   record.ActionRequired,
		UpgradedLogic:    record.UpgradedLogic,
		Environment:      record.Environment,
		CorrelationID:    record.CorrelationID,
		PolicyHash:       record.PolicyHash,
		SequenceID:       record.SequenceID,
		Metadata:         record.Metadata,
		Proof:            record.Proof,
	}
}

func toSealDTO(cert entities.SealCertificate) httptransport.SealCertificateDTO {
	return httptransport.SealCertificateDTO{
		CertificateID: cert.CertificateID,
		Fingerprint:   cert.Fingerprint,
		NotarySeal:    cert.NotarySeal,
		Authority:     cert.Authority,
		FromSequence:  cert.FromSequence,
		ToSequence:    cert.ToSequence,
		RecordCount:   cert.RecordCount,
		SealedAt:      cert.SealedAt,
	}
}
