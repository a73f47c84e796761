package audit

import (
	"context"

	ledgercommands "warden/contexts/audit-core/forensic-ledger/application/commands"
	ledgerentities "warden/contexts/audit-core/forensic-ledger/domain/entities"
	"warden/contexts/access-control/access-coordinator/ports"
)

// Recorder bridges the coordinator's audit port onto the forensic ledger.
type Recorder struct {
	Ledger ledgercommands.RecordEventUseCase
}

func (r Recorder) RecordSecurityEvent(ctx context.Context, entry ports.AuditEntry) (uint64, error) {
	severity, ok := ledgerentities.ParseSeverity(entry.Severity)
	if !ok {
		severity = ledgerentities.SeverityWarning
	}
	result, err := r.Ledger.Execute(ctx, ledgercommands.RecordEventCommand{
		Source:         "access-control/access-coordinator",
		Actor:          entry.Actor,
		Origin:         entry.Actor,
		Severity:       severity,
		Category:       entry.Category,
		Detail:         entry.Detail,
		RiskScore:      entry.RiskScore,
		CorrelationID:  entry.CorrelationID,
		ActionRequired: entry.ActionRequired,
	})
	if err != nil {
		return 0, err
	}
	return result.SequenceID, nil
}
