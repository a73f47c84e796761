package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"warden/contexts/access-control/access-coordinator/domain/entities"
	domainerrors "warden/contexts/access-control/access-coordinator/domain/errors"
)

// BootstrapSovereign is the identity seeded with the sovereign tag so a
// fresh deployment has a root authority able to grant everything else.
const BootstrapSovereign = "system-root"

// Store is an in-memory adapter implementing the authority repository port.
// It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	roles    map[string]map[entities.Role]struct{}
	lockdown bool
	sectors  map[string]entities.SectorStatus
}

// NewStore builds a deterministic in-memory adapter seeded with the
// bootstrap sovereign and the default functional sectors, all enabled.
func NewStore() *Store {
	sectors := make(map[string]entities.SectorStatus)
	for _, sectorID := range []string{"token", "treasury", "swap", "bridge"} {
		sectors[sectorID] = entities.SectorStatus{SectorID: sectorID, Enabled: true}
	}
	return &Store{
		roles: map[string]map[entities.Role]struct{}{
			BootstrapSovereign: {entities.RoleSovereign: {}},
		},
		sectors: sectors,
	}
}

func (s *Store) HasRole(_ context.Context, actor string, role entities.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	granted, ok := s.roles[actor]
	if !ok {
		return false, nil
	}
	_, held := granted[role]
	return held, nil
}

func (s *Store) ActorRoles(_ context.Context, actor string) ([]entities.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	granted := s.roles[actor]
	out := make([]entities.Role, 0, len(granted))
	for _, role := range entities.Roles() {
		if _, held := granted[role]; held {
			out = append(out, role)
		}
	}
	return out, nil
}

func (s *Store) GrantRole(_ context.Context, actor string, role entities.Role, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	granted, ok := s.roles[actor]
	if !ok {
		granted = make(map[entities.Role]struct{})
		s.roles[actor] = granted
	}
	if _, held := granted[role]; held {
		return domainerrors.ErrRoleAlreadyGranted
	}
	granted[role] = struct{}{}
	return nil
}

func (s *Store) RevokeRole(_ context.Context, actor string, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	granted, ok := s.roles[actor]
	if !ok {
		return domainerrors.ErrRoleNotGranted
	}
	if _, held := granted[role]; !held {
		return domainerrors.ErrRoleNotGranted
	}
	delete(granted, role)
	return nil
}

func (s *Store) LockdownState(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lockdown, nil
}

func (s *Store) SetLockdown(_ context.Context, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockdown = active
	return nil
}

func (s *Store) SectorStatus(_ context.Context, sectorID string) (entities.SectorStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.sectors[sectorID]
	if !ok {
		return entities.SectorStatus{}, domainerrors.ErrSectorNotFound
	}
	return status, nil
}

func (s *Store) SetSectorStatus(_ context.Context, status entities.SectorStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sectors[status.SectorID] = status
	return nil
}

func (s *Store) ListSectors(_ context.Context) ([]entities.SectorStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sectors))
	for id := range s.sectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]entities.SectorStatus, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.sectors[id])
	}
	return out, nil
}

// Now implements ports.Clock.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
