// Package store persists the authorized-caller allow-list.
package store

import (
	"context"
	"sort"
	"sync"

	"surety/internal/access/models"
	id "surety/pkg/domain"
	"surety/pkg/platform/sentinel"
)

type InMemory struct {
	mu      sync.RWMutex
	callers map[id.ModuleID]models.AuthorizedCaller
}

func NewInMemory() *InMemory {
	return &InMemory{callers: make(map[id.ModuleID]models.AuthorizedCaller)}
}

// Add inserts caller, returning sentinel.ErrAlreadyUsed if the module is
// already listed.
func (s *InMemory) Add(_ context.Context, caller models.AuthorizedCaller) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.callers[caller.Module]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.callers[caller.Module] = caller
	return nil
}

// Remove deletes module, returning sentinel.ErrNotFound if it is not listed.
func (s *InMemory) Remove(_ context.Context, module id.ModuleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.callers[module]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.callers, module)
	return nil
}

func (s *InMemory) Contains(_ context.Context, module id.ModuleID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.callers[module]
	return ok, nil
}

// List returns callers ordered by authorization time.
func (s *InMemory) List(_ context.Context) ([]models.AuthorizedCaller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AuthorizedCaller, 0, len(s.callers))
	for _, c := range s.callers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AuthorizedAt.Equal(out[j].AuthorizedAt) {
			return out[i].Module.String() < out[j].Module.String()
		}
		return out[i].AuthorizedAt.Before(out[j].AuthorizedAt)
	})
	return out, nil
}
