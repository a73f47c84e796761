package queries

import (
	"context"
	"log/slog"

	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	"warden/contexts/audit-core/forensic-ledger/ports"
)

// GetRecordUseCase resolves one record by its global sequence id.
type GetRecordUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (u GetRecordUseCase) Execute(ctx context.Context, sequenceID uint64) (entities.ForensicRecord, error) {
	return u.Repository.GetRecord(ctx, sequenceID)
}
