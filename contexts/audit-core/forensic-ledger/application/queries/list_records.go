package queries

import (
	"context"
	"log/slog"

	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	"warden/contexts/audit-core/forensic-ledger/ports"
)

// ListRecordsQuery pages through the ledger in sequence order.
type ListRecordsQuery struct {
	FromSequence uint64
	Limit        int
}

// ListRecordsResult carries one page plus the total accepted count.
type ListRecordsResult struct {
	Records []entities.ForensicRecord `json:"records"`
	Total   uint64                    `json:"total"`
}

// ListRecordsUseCase reads a contiguous ledger segment.
type ListRecordsUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

const defaultListLimit = 100

func (u ListRecordsUseCase) Execute(ctx context.Context, query ListRecordsQuery) (ListRecordsResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	records, err := u.Repository.ListRecords(ctx, query.FromSequence, limit)
	if err != nil {
		return ListRecordsResult{}, err
	}
	total, err := u.Repository.CountRecords(ctx)
	if err != nil {
		return ListRecordsResult{}, err
	}
	return ListRecordsResult{Records: records, Total: total}, nil
}
