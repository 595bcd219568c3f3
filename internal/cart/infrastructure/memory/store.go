// Package memory keeps session carts in process memory. Carts are created
// on first touch and die with the process; persisting them anywhere is an
// explicit non-goal of the storefront.
package memory

import (
	"context"
	"sync"

	"github.com/donutopia/storefront/internal/cart/domain"
)

type Store struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*domain.Cart)}
}

func (s *Store) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c, nil
	}
	c = domain.New()
	s.carts[sessionID] = c
	return c, nil
}

// Len reports how many sessions currently hold a cart.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
