package store

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sbstocks/stocksim/internal/domain"
)

// TransactionStore is an append-only, thread-safe in-memory journal of
// executed trades, with a secondary index by user. Records are never
// mutated or deleted after Append.
type TransactionStore struct {
	mu     sync.RWMutex
	all    []*domain.Transaction            // chronological
	byUser map[string][]*domain.Transaction // user ID → chronological
}

// NewTransactionStore creates an empty TransactionStore.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		byUser: make(map[string][]*domain.Transaction),
	}
}

// Append adds a transaction to the journal.
func (s *TransactionStore) Append(t *domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.all = append(s.all, t)
	s.byUser[t.UserID] = append(s.byUser[t.UserID], t)
}

// ListByUser returns a user's transactions in reverse chronological order
// (newest first). If kind is non-nil, only transactions of that kind are
// included. Pagination is 1-based. Returns the requested page and the
// total count of matching transactions (before pagination).
func (s *TransactionStore) ListByUser(userID string, kind *domain.TransactionKind, page, limit int) ([]*domain.Transaction, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.byUser[userID]

	// Filter by kind if provided, collecting in reverse order.
	filtered := make([]*domain.Transaction, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if kind != nil && all[i].Kind != *kind {
			continue
		}
		filtered = append(filtered, all[i])
	}

	total := len(filtered)

	start := (page - 1) * limit
	if start >= total {
		return []*domain.Transaction{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return filtered[start:end], total
}

// Recent returns the n most recent transactions across all users,
// newest first.
func (s *TransactionStore) Recent(n int) []*domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.all) {
		n = len(s.all)
	}
	recent := make([]*domain.Transaction, 0, n)
	for i := len(s.all) - 1; i >= len(s.all)-n; i-- {
		recent = append(recent, s.all[i])
	}
	return recent
}

// Count returns the total number of journaled transactions.
func (s *TransactionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.all)
}

// VolumeByKind returns the sum of TotalAmount over all transactions of
// the given kind.
func (s *TransactionStore) VolumeByKind(kind domain.TransactionKind) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range s.all {
		if t.Kind == kind {
			total = total.Add(t.TotalAmount)
		}
	}
	return total
}
