package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"warden/contexts/audit-core/forensic-ledger/domain/entities"
	domainerrors "warden/contexts/audit-core/forensic-ledger/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

// Repository is the PostgreSQL adapter for the forensic ledger. The sequence
// counter row is locked and advanced inside the same transaction as the
// record insert, so an accepted write can never burn or skip an id.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

type recordModel struct {
	SequenceID       uint64    `gorm:"column:sequence_id;primaryKey"`
	Source           string    `gorm:"column:source"`
	Actor            string    `gorm:"column:actor"`
	Origin           string    `gorm:"column:origin"`
	Counterparty     string    `gorm:"column:counterparty"`
	Severity         int       `gorm:"column:severity"`
	Category         string    `gorm:"column:category"`
	Detail           string    `gorm:"column:detail"`
	RiskScore        uint8     `gorm:"column:risk_score"`
	ReporterNonce    uint64    `gorm:"column:reporter_nonce"`
	NetworkID        string    `gorm:"column:network_id"`
	BlockHeight      uint64    `gorm:"column:block_height"`
	OccurredAt       time.Time `gorm:"column:occurred_at"`
	ResourceUsage    uint64    `gorm:"column:resource_usage"`
	ValueMoved       uint64    `gorm:"column:value_moved"`
	StateFingerprint []byte    `gorm:"column:state_fingerprint"`
	TxFingerprint    []byte    `gorm:"column:tx_fingerprint"`
	SelectorTag      string    `gorm:"column:selector_tag"`
	SchemaVersion    int       `gorm:"column:schema_version"`
	ActionRequired   bool      `gorm:"column:action_required"`
	UpgradedLogic    bool      `gorm:"column:upgraded_logic"`
	Environment      string    `gorm:"column:environment"`
	CorrelationID    string    `gorm:"column:correlation_id"`
	PolicyHash       string    `gorm:"column:policy_hash"`
	Metadata         []byte    `gorm:"column:metadata"`
	Proof            []byte    `gorm:"column:proof"`
}

func (recordModel) TableName() string { return "forensic_records" }

type sequenceCounterModel struct {
	CounterName string `gorm:"column:counter_name;primaryKey"`
	NextValue   uint64 `gorm:"column:next_value"`
}

func (sequenceCounterModel) TableName() string { return "ledger_counters" }

type reporterNonceModel struct {
	Source    string `gorm:"column:source;primaryKey"`
	NextValue uint64 `gorm:"column:next_value"`
}

func (reporterNonceModel) TableName() string { return "reporter_nonces" }

type sealModel struct {
	CertificateID string    `gorm:"column:certificate_id;primaryKey"`
	Fingerprint   string    `gorm:"column:fingerprint"`
	NotarySeal    string    `gorm:"column:notary_seal"`
	Authority     string    `gorm:"column:authority"`
	FromSequence  uint64    `gorm:"column:from_sequence"`
	ToSequence    uint64    `gorm:"column:to_sequence"`
	RecordCount   int       `gorm:"column:record_count"`
	SealedAt      time.Time `gorm:"column:sealed_at"`
}

func (sealModel) TableName() string { return "ledger_seals" }

type sealCursorModel struct {
	CursorName   string `gorm:"column:cursor_name;primaryKey"`
	LastSequence uint64 `gorm:"column:last_sequence"`
	SealedAny    bool   `gorm:"column:sealed_any"`
}

func (sealCursorModel) TableName() string { return "ledger_seal_cursors" }

const (
	globalSequenceCounter = "forensic_sequence"
	sealCursorName        = "forensic_seal"
)

// Migrate creates or updates the ledger tables.
func (r *Repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&recordModel{},
		&sequenceCounterModel{},
		&reporterNonceModel{},
		&sealModel{},
		&sealCursorModel{},
	)
}

// Append inserts one record with the next sequence id and reporter nonce.
func (r *Repository) Append(ctx context.Context, record entities.ForensicRecord) (entities.ForensicRecord, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter sequenceCounterModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("counter_name = ?", globalSequenceCounter).
			First(&counter).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counter = sequenceCounterModel{CounterName: globalSequenceCounter}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var nonce reporterNonceModel
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("source = ?", record.Source).
			First(&nonce).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			nonce = reporterNonceModel{Source: record.Source}
			if err := tx.Create(&nonce).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		record.SequenceID = counter.NextValue
		record.ReporterNonce = nonce.NextValue

		if err := tx.Create(toRecordModel(record)).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return domainerrors.ErrSequenceGap
			}
			return err
		}

		if err := tx.Model(&sequenceCounterModel{}).
			Where("counter_name = ?", globalSequenceCounter).
			Update("next_value", counter.NextValue+1).
			Error; err != nil {
			return err
		}
		return tx.Model(&reporterNonceModel{}).
			Where("source = ?", record.Source).
			Update("next_value", nonce.NextValue+1).
			Error
	})
	if err != nil {
		return entities.ForensicRecord{}, err
	}
	return record, nil
}

func (r *Repository) GetRecord(ctx context.Context, sequenceID uint64) (entities.ForensicRecord, error) {
	var row recordModel
	err := r.db.WithContext(ctx).
		Where("sequence_id = ?", sequenceID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ForensicRecord{}, domainerrors.ErrRecordNotFound
		}
		return entities.ForensicRecord{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRecords(ctx context.Context, fromSequence uint64, limit int) ([]entities.ForensicRecord, error) {
	var rows []recordModel
	if err := r.db.WithContext(ctx).
		Where("sequence_id >= ?", fromSequence).
		Order("sequence_id ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.ForensicRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountRecords(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&recordModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return uint64(count), nil
}

func (r *Repository) LastSealedSequence(ctx context.Context) (uint64, bool, error) {
	var cursor sealCursorModel
	err := r.db.WithContext(ctx).
		Where("cursor_name = ?", sealCursorName).
		First(&cursor).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return cursor.LastSequence, cursor.SealedAny, nil
}

// SaveSeal writes the certificate and advances the cursor transactionally.
func (r *Repository) SaveSeal(ctx context.Context, cert entities.SealCertificate, lastSequence uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sealModel{
			CertificateID: cert.CertificateID,
			Fingerprint:   cert.Fingerprint,
			NotarySeal:    cert.NotarySeal,
			Authority:     cert.Authority,
			FromSequence:  cert.FromSequence,
			ToSequence:    cert.ToSequence,
			RecordCount:   cert.RecordCount,
			SealedAt:      cert.SealedAt,
		}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cursor_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_sequence", "sealed_any"}),
		}).Create(&sealCursorModel{
			CursorName:   sealCursorName,
			LastSequence: lastSequence,
			SealedAny:    true,
		}).Error
	})
}

func (r *Repository) ListSeals(ctx context.Context) ([]entities.SealCertificate, error) {
	var rows []sealModel
	if err := r.db.WithContext(ctx).
		Order("from_sequence ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.SealCertificate, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.SealCertificate{
			CertificateID: row.CertificateID,
			Fingerprint:   row.Fingerprint,
			NotarySeal:    row.NotarySeal,
			Authority:     row.Authority,
			FromSequence:  row.FromSequence,
			ToSequence:    row.ToSequence,
			RecordCount:   row.RecordCount,
			SealedAt:      row.SealedAt,
		})
	}
	return items, nil
}

func toRecordModel(record entities.ForensicRecord) *recordModel {
	return &recordModel{
		SequenceID:       record.SequenceID,
		Source:           record.Source,
		Actor:            record.Actor,
		Origin:           record.Origin,
		Counterparty:     record.Counterparty,
		Severity:         int(record.Severity),
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
		Metadata:         record.Metadata,
		Proof:            record.Proof,
	}
}

func (m recordModel) toEntity() entities.ForensicRecord {
	return entities.ForensicRecord{
		SequenceID:       m.SequenceID,
		Source:           m.Source,
		Actor:            m.Actor,
		Origin:           m.Origin,
		Counterparty:     m.Counterparty,
		Severity:         entities.Severity(m.Severity),
		Category:         m.Category,
		Detail:           m.Detail,
		RiskScore:        m.RiskScore,
		ReporterNonce:    m.ReporterNonce,
		NetworkID:        m.NetworkID,
		BlockHeight:      m.BlockHeight,
		OccurredAt:       m.OccurredAt,
		ResourceUsage:    m.ResourceUsage,
		ValueMoved:       m.ValueMoved,
		StateFingerprint: m.StateFingerprint,
		TxFingerprint:    m.TxFingerprint,
		SelectorTag:      m.SelectorTag,
		SchemaVersion:    m.SchemaVersion,
		ActionRequired:   m.ActionRequired,
		UpgradedLogic:    m.UpgradedLogic,
		Environment:      m.Environment,
		CorrelationID:    m.CorrelationID,
		PolicyHash:       m.PolicyHash,
		Metadata:         m.Metadata,
		Proof:            m.Proof,
	}
}
