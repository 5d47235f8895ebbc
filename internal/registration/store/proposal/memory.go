// Package proposal persists candidate proposals and their vote sets.
package proposal

import (
	"context"
	"sync"

	"surety/internal/registration/models"
	id "surety/pkg/domain"
	"surety/pkg/platform/sentinel"
)

type InMemory struct {
	mu        sync.RWMutex
	proposals map[id.MemberID]*models.Proposal
}

func NewInMemory() *InMemory {
	return &InMemory{proposals: make(map[id.MemberID]*models.Proposal)}
}

func (s *InMemory) Find(_ context.Context, candidate id.MemberID) (*models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.proposals[candidate]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneProposal(p), nil
}

func (s *InMemory) Save(_ context.Context, proposal *models.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[proposal.Candidate] = cloneProposal(proposal)
	return nil
}

func cloneProposal(p *models.Proposal) *models.Proposal {
	c := *p
	c.Voters = append([]id.MemberID(nil), p.Voters...)
	if p.ResolvedAt != nil {
		at := *p.ResolvedAt
		c.ResolvedAt = &at
	}
	return &c
}
