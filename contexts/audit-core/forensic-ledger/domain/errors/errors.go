package errors

import "errors"

var (
	ErrMissingSource      = errors.New("record source is required")
	ErrMissingCategory    = errors.New("record category is required")
	ErrInvalidSeverity    = errors.New("invalid severity")
	ErrInvalidRiskScore   = errors.New("risk score exceeds maximum")
	ErrInvalidFingerprint = errors.New("fingerprint slot must be exactly 32 bytes")
	ErrRecordNotFound     = errors.New("forensic record not found")
	ErrSealNotFound       = errors.New("seal certificate not found")
	ErrSequenceGap        = errors.New("sequence id out of order")
)
