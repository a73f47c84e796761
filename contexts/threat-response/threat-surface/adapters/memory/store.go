package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"warden/contexts/threat-response/threat-surface/domain/entities"
	domainerrors "warden/contexts/threat-response/threat-surface/domain/errors"
)

const defaultHistoryLimit = 100

// Store is the in-memory adapter backing the catalog, the threat history and
// the suspect read model.
//
// The catalog is a slot map: a dense entry slice plus an id-to-index map.
// Removal swaps the last entry into the vacated slot, so insert, remove and
// lookup stay O(1) and the count is always len(entries).
type Store struct {
	mu sync.RWMutex

	patterns     []entities.ThreatPattern
	patternSlots map[string]int

	history  []entities.ThreatEvent
	suspects map[string]entities.SuspectScore
}

// NewStore builds an empty in-memory adapter.
func NewStore() *Store {
	return &Store{
		patternSlots: make(map[string]int),
		suspects:     make(map[string]entities.SuspectScore),
	}
}

func (s *Store) RegisterPattern(_ context.Context, pattern entities.ThreatPattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.patternSlots[pattern.PatternID]; exists {
		return domainerrors.ErrPatternRegistered
	}
	s.patternSlots[pattern.PatternID] = len(s.patterns)
	s.patterns = append(s.patterns, pattern)
	return nil
}

func (s *Store) RemovePattern(_ context.Context, patternID string) (entities.ThreatPattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, exists := s.patternSlots[patternID]
	if !exists {
		return entities.ThreatPattern{}, domainerrors.ErrPatternNotFound
	}
	removed := s.patterns[slot]

	last := len(s.patterns) - 1
	if slot != last {
		s.patterns[slot] = s.patterns[last]
		s.patternSlots[s.patterns[slot].PatternID] = slot
	}
	s.patterns = s.patterns[:last]
	delete(s.patternSlots, patternID)
	return removed, nil
}

func (s *Store) HasPattern(_ context.Context, patternID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.patternSlots[patternID]
	return exists, nil
}

func (s *Store) PatternCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patterns), nil
}

func (s *Store) ListPatterns(_ context.Context) ([]entities.ThreatPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.ThreatPattern, len(s.patterns))
	copy(out, s.patterns)
	return out, nil
}

func (s *Store) AppendThreat(_ context.Context, event entities.ThreatEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, event)
	return nil
}

func (s *Store) ListThreats(_ context.Context, limit int) ([]entities.ThreatEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > len(s.history) {
		limit = len(s.history)
	}

	// Newest first.
	out := make([]entities.ThreatEvent, 0, limit)
	for i := len(s.history) - 1; i >= len(s.history)-limit; i-- {
		out = append(out, s.history[i])
	}
	return out, nil
}

func (s *Store) RemoveThreat(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].EventID == eventID {
			s.history = append(s.history[:i], s.history[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrPatternNotFound
}

func (s *Store) SuspectScore(_ context.Context, actor string) (entities.SuspectScore, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, found := s.suspects[actor]
	return score, found, nil
}

func (s *Store) SetSuspectScore(_ context.Context, score entities.SuspectScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspects[score.Actor] = score
	return nil
}

func (s *Store) ClearSuspectScore(_ context.Context, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.suspects, actor)
	return nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewID implements ports.IDGenerator.
func (s *Store) NewID() string {
	return uuid.NewString()
}
