package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"warden/contexts/governance/compensation-workflow/domain/entities"
	domainerrors "warden/contexts/governance/compensation-workflow/domain/errors"
)

// Store is the in-memory proposal repository.
type Store struct {
	mu        sync.RWMutex
	proposals map[string]entities.Proposal
}

// NewStore builds an empty in-memory repository.
func NewStore() *Store {
	return &Store{proposals: make(map[string]entities.Proposal)}
}

func (s *Store) SaveProposal(_ context.Context, proposal entities.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[proposal.ProposalID] = proposal
	return nil
}

func (s *Store) DeleteProposal(_ context.Context, proposalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.proposals[proposalID]; !exists {
		return domainerrors.ErrProposalNotFound
	}
	delete(s.proposals, proposalID)
	return nil
}

func (s *Store) GetProposal(_ context.Context, proposalID string) (entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, exists := s.proposals[proposalID]
	if !exists {
		return entities.Proposal{}, domainerrors.ErrProposalNotFound
	}
	return proposal, nil
}

func (s *Store) ListProposals(_ context.Context) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Proposal, 0, len(s.proposals))
	for _, proposal := range s.proposals {
		out = append(out, proposal)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ProposalID < out[j].ProposalID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID() string {
	return uuid.NewString()
}
