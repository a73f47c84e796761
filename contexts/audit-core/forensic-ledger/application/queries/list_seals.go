package queries

import (
	"context"
	"log/slog"

	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	"warden/contexts/audit-core/forensic-ledger/ports"
)

// ListSealsUseCase returns all attestation certificates in sealing order.
type ListSealsUseCase struct {
	Seals  ports.SealStore
	Logger *slog.Logger
}

func (u ListSealsUseCase) Execute(ctx context.Context) ([]entities.SealCertificate, error) {
	return u.Seals.ListSeals(ctx)
}
