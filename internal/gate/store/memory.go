// Package store persists the process-wide operating flag.
package store

import (
	"context"
	"sync"
)

// InMemory keeps the flag in process memory. A fresh store reports operational.
type InMemory struct {
	mu          sync.RWMutex
	operational bool
}

func NewInMemory() *InMemory {
	return &InMemory{operational: true}
}

func (s *InMemory) Operational(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operational, nil
}

func (s *InMemory) SetOperational(_ context.Context, operational bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operational = operational
	return nil
}
