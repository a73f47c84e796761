package commands

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "warden/contexts/audit-core/forensic-ledger/application"
	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	"warden/contexts/audit-core/forensic-ledger/ports"
	"warden/internal/shared/events"
)

// SealSegmentCommand bounds one sealing pass.
type SealSegmentCommand struct {
	// BatchLimit caps how many records one pass seals; zero means the default.
	BatchLimit int
}

// SealSegmentResult reports the outcome of a pass. Sealed is false when the
// cursor is already at the ledger head, which is a normal idle outcome.
type SealSegmentResult struct {
	Sealed      bool                     `json:"sealed"`
	Certificate entities.SealCertificate `json:"certificate,omitempty"`
}

// SealSegmentUseCase seals the unsealed tail of the ledger into an attestation
// certificate: canonical sorted-key JSON of the segment, SHA-256 fingerprint,
// resume cursor advanced in the same store write.
type SealSegmentUseCase struct {
	Repository  ports.Repository
	Seals       ports.SealStore
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	NotarySeal  string
	Authority   string
	BatchLimit  int
	Logger      *slog.Logger
}

const defaultSealBatchLimit = 500

// Execute runs one sealing pass.
func (u SealSegmentUseCase) Execute(ctx context.Context, cmd SealSegmentCommand) (SealSegmentResult, error) {
	logger := application.ResolveLogger(u.Logger)

	limit := cmd.BatchLimit
	if limit <= 0 {
		limit = u.BatchLimit
	}
	if limit <= 0 {
		limit = defaultSealBatchLimit
	}

	cursor, sealedBefore, err := u.Seals.LastSealedSequence(ctx)
	if err != nil {
		return SealSegmentResult{}, err
	}
	from := uint64(0)
	if sealedBefore {
		from = cursor + 1
	}

	records, err := u.Repository.ListRecords(ctx, from, limit)
	if err != nil {
		return SealSegmentResult{}, err
	}
	if len(records) == 0 {
		logger.Debug("seal pass idle, cursor at head",
			"event", "ledger_seal_idle",
			"module", "audit-core/forensic-ledger",
			"layer", "application",
			"cursor", from,
		)
		return SealSegmentResult{Sealed: false}, nil
	}

	fingerprint, err := segmentFingerprint(records)
	if err != nil {
		return SealSegmentResult{}, err
	}

	certificateID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return SealSegmentResult{}, err
	}

	cert := entities.SealCertificate{
		CertificateID: certificateID,
		Fingerprint:   fingerprint,
		NotarySeal:    u.NotarySeal,
		Authority:     u.Authority,
		FromSequence:  records[0].SequenceID,
		ToSequence:    records[len(records)-1].SequenceID,
		RecordCount:   len(records),
		SealedAt:      u.now(),
	}

	if err := u.Seals.SaveSeal(ctx, cert, cert.ToSequence); err != nil {
		logger.Error("seal save failed",
			"event", "ledger_seal_save_failed",
			"module", "audit-core/forensic-ledger",
			"layer", "application",
			"from_sequence", cert.FromSequence,
			"to_sequence", cert.ToSequence,
			"error", err.Error(),
		)
		return SealSegmentResult{}, err
	}

	if u.Publisher != nil {
		envelope := events.Envelope{
			EventID:       certificateID,
			EventType:     events.TopicSegmentSealed,
			SourceService: "warden",
			OccurredAtUTC: cert.SealedAt,
			SequenceID:    cert.ToSequence,
			Reporter:      "audit-core/forensic-ledger",
			Severity:      entities.SeverityInfo.String(),
			Category:      "ledger_seal",
			Payload:       cert,
		}
		if err := u.Publisher.Publish(ctx, events.TopicSegmentSealed, envelope); err != nil {
			logger.Warn("seal notification dropped",
				"event", "ledger_seal_notify_failed",
				"module", "audit-core/forensic-ledger",
				"layer", "application",
				"certificate_id", certificateID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("ledger segment sealed",
		"event", "ledger_segment_sealed",
		"module", "audit-core/forensic-ledger",
		"layer", "application",
		"certificate_id", cert.CertificateID,
		"fingerprint", cert.Fingerprint,
		"from_sequence", cert.FromSequence,
		"to_sequence", cert.ToSequence,
		"record_count", cert.RecordCount,
	)

	return SealSegmentResult{Sealed: true, Certificate: cert}, nil
}

// segmentFingerprint derives the upper-case SHA-256 of the segment's
// canonical JSON. Round-tripping through generic maps gives sorted keys, so
// any holder of the same records reproduces the same digest.
func segmentFingerprint(records []entities.ForensicRecord) (string, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	var generic []map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", err
	}
	digest := sha256.Sum256(canonical)
	return strings.ToUpper(fmt.Sprintf("%x", digest)), nil
}

func (u SealSegmentUseCase) now() time.Time {
	if u.Clock != nil {
		return u.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
