// Package bond persists posted bonds.
package bond

import (
	"context"
	"sync"

	"surety/internal/funding/models"
	id "surety/pkg/domain"
	"surety/pkg/platform/sentinel"
)

type InMemory struct {
	mu    sync.RWMutex
	bonds map[id.MemberID]models.Bond
}

func NewInMemory() *InMemory {
	return &InMemory{bonds: make(map[id.MemberID]models.Bond)}
}

func (s *InMemory) Find(_ context.Context, memberID id.MemberID) (*models.Bond, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bonds[memberID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if b.FundedAt != nil {
		at := *b.FundedAt
		b.FundedAt = &at
	}
	return &b, nil
}

func (s *InMemory) Save(_ context.Context, bond *models.Bond) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bonds[bond.MemberID] = *bond
	return nil
}
