package memory

import (
	"context"
	"sync"
	"time"

	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	domainerrors "warden/contexts/audit-core/forensic-ledger/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing repository/seal/clock/id ports.
// It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	records        []entities.ForensicRecord
	reporterNonces map[string]uint64

	seals      []entities.SealCertificate
	sealCursor uint64
	sealedAny  bool
}

// NewStore builds an empty in-memory ledger.
func NewStore() *Store {
	return &Store{
		reporterNonces: make(map[string]uint64),
	}
}

// Append assigns the next sequence id and per-reporter nonce with the write.
func (s *Store) Append(_ context.Context, record entities.ForensicRecord) (entities.ForensicRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.SequenceID = uint64(len(s.records))
	record.ReporterNonce = s.reporterNonces[record.Source]
	s.reporterNonces[record.Source]++

	s.records = append(s.records, record)
	return record, nil
}

func (s *Store) GetRecord(_ context.Context, sequenceID uint64) (entities.ForensicRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sequenceID >= uint64(len(s.records)) {
		return entities.ForensicRecord{}, domainerrors.ErrRecordNotFound
	}
	return s.records[sequenceID], nil
}

func (s *Store) ListRecords(_ context.Context, fromSequence uint64, limit int) ([]entities.ForensicRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fromSequence >= uint64(len(s.records)) {
		return nil, nil
	}
	end := fromSequence + uint64(limit)
	if end > uint64(len(s.records)) {
		end = uint64(len(s.records))
	}
	out := make([]entities.ForensicRecord, end-fromSequence)
	copy(out, s.records[fromSequence:end])
	return out, nil
}

func (s *Store) CountRecords(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.records)), nil
}

func (s *Store) LastSealedSequence(_ context.Context) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealCursor, s.sealedAny, nil
}

// SaveSeal stores the certificate and advances the cursor in one step.
func (s *Store) SaveSeal(_ context.Context, cert entities.SealCertificate, lastSequence uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seals = append(s.seals, cert)
	s.sealCursor = lastSequence
	s.sealedAny = true
	return nil
}

func (s *Store) ListSeals(_ context.Context) ([]entities.SealCertificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.SealCertificate, len(s.seals))
	copy(out, s.seals)
	return out, nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
