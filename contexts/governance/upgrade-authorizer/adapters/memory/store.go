package memory

import (
	"context"
	"sync"
	"time"

	"warden/contexts/governance/upgrade-authorizer/domain/entities"
	domainerrors "warden/contexts/governance/upgrade-authorizer/domain/errors"
)

// Default policy for local wiring.
const (
	DefaultRequiredApprovals = 2
	DefaultMinInterval       = 24 * time.Hour
)

// Store is the in-memory adapter backing the policy and approval set.
type Store struct {
	mu        sync.RWMutex
	policy    entities.Policy
	approvals map[entities.ApprovalKey]entities.Approval
}

// NewStore builds a store at epoch zero with the default policy.
func NewStore() *Store {
	return &Store{
		policy: entities.Policy{
			RequiredApprovals: DefaultRequiredApprovals,
			MinInterval:       DefaultMinInterval,
		},
		approvals: make(map[entities.ApprovalKey]entities.Approval),
	}
}

func (s *Store) Policy(_ context.Context) (entities.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy, nil
}

func (s *Store) SavePolicy(_ context.Context, policy entities.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = policy
	return nil
}

func (s *Store) RecordApproval(_ context.Context, approval entities.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.approvals[approval.Key]; exists {
		return domainerrors.ErrAlreadyApproved
	}
	s.approvals[approval.Key] = approval
	return nil
}

func (s *Store) RemoveApproval(_ context.Context, key entities.ApprovalKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.approvals, key)
	return nil
}

func (s *Store) HasApproved(_ context.Context, key entities.ApprovalKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.approvals[key]
	return exists, nil
}

func (s *Store) ApprovalCount(_ context.Context, nonce uint64, candidate string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for key := range s.approvals {
		if key.Nonce == nonce && key.Candidate == candidate {
			count++
		}
	}
	return count, nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
