package store

import (
	"sync"

	"github.com/sbstocks/stocksim/internal/domain"
)

// PortfolioStore is a thread-safe in-memory store for portfolios,
// keyed by user ID. The portfolio objects themselves are guarded by the
// owning user's lock; the store lock only covers the map.
type PortfolioStore struct {
	mu         sync.RWMutex
	portfolios map[string]*domain.Portfolio
}

// NewPortfolioStore creates an empty PortfolioStore.
func NewPortfolioStore() *PortfolioStore {
	return &PortfolioStore{
		portfolios: make(map[string]*domain.Portfolio),
	}
}

// Create adds a portfolio for the user, replacing nothing: if one already
// exists it is returned unchanged.
func (s *PortfolioStore) Create(p *domain.Portfolio) *domain.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.portfolios[p.UserID]; ok {
		return existing
	}
	s.portfolios[p.UserID] = p
	return p
}

// GetByUser retrieves the portfolio for a user. It returns
// domain.ErrNoPortfolio if the user has none.
func (s *PortfolioStore) GetByUser(userID string) (*domain.Portfolio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.portfolios[userID]
	if !ok {
		return nil, domain.ErrNoPortfolio
	}
	return p, nil
}

// GetOrCreate retrieves the portfolio for a user, creating an empty one
// if absent.
func (s *PortfolioStore) GetOrCreate(userID string) *domain.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.portfolios[userID]; ok {
		return p
	}
	p := domain.NewPortfolio(userID)
	s.portfolios[userID] = p
	return p
}
