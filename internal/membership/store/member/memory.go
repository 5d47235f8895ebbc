// Package member persists consortium members.
package member

import (
	"context"
	"sort"
	"sync"

	"surety/internal/membership/models"
	id "surety/pkg/domain"
	"surety/pkg/platform/sentinel"
)

type InMemory struct {
	mu      sync.RWMutex
	members map[id.MemberID]*models.Member
}

func NewInMemory() *InMemory {
	return &InMemory{members: make(map[id.MemberID]*models.Member)}
}

func (s *InMemory) FindByID(_ context.Context, memberID id.MemberID) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[memberID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneMember(m), nil
}

// Save inserts or replaces member.
func (s *InMemory) Save(_ context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.ID] = cloneMember(member)
	return nil
}

func (s *InMemory) CountRegistered(_ context.Context) (uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n uint32
	for _, m := range s.members {
		if m.Registered {
			n++
		}
	}
	return n, nil
}

// List returns every member in creation order.
func (s *InMemory) List(_ context.Context) ([]*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, cloneMember(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func cloneMember(m *models.Member) *models.Member {
	c := *m
	if m.RegisteredAt != nil {
		at := *m.RegisteredAt
		c.RegisteredAt = &at
	}
	return &c
}
