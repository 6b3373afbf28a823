package store

import (
	"sync"
	"time"

	"github.com/sbstocks/stocksim/internal/domain"
)

// WatchlistStore is a thread-safe in-memory store for watchlists,
// keyed by user ID.
type WatchlistStore struct {
	mu         sync.RWMutex
	watchlists map[string]*domain.Watchlist
}

// NewWatchlistStore creates an empty WatchlistStore.
func NewWatchlistStore() *WatchlistStore {
	return &WatchlistStore{
		watchlists: make(map[string]*domain.Watchlist),
	}
}

// GetOrCreate returns a snapshot of a user's watchlist, creating an
// empty one if absent.
func (s *WatchlistStore) GetOrCreate(userID string) domain.Watchlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshotWatchlist(s.getOrCreateLocked(userID))
}

// Add appends a stock ID to a user's watchlist, creating the watchlist
// if absent. It returns domain.ErrAlreadyWatched if the stock is already
// on the list.
func (s *WatchlistStore) Add(userID, stockID string) (domain.Watchlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.getOrCreateLocked(userID)
	if w.Contains(stockID) {
		return domain.Watchlist{}, domain.ErrAlreadyWatched
	}
	w.StockIDs = append(w.StockIDs, stockID)
	w.UpdatedAt = time.Now()
	return snapshotWatchlist(w), nil
}

// Remove deletes a stock ID from a user's watchlist. Removing an absent
// stock is a no-op. It returns domain.ErrWatchlistNotFound if the user
// has no watchlist at all.
func (s *WatchlistStore) Remove(userID, stockID string) (domain.Watchlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.watchlists[userID]
	if !ok {
		return domain.Watchlist{}, domain.ErrWatchlistNotFound
	}
	w.Remove(stockID)
	w.UpdatedAt = time.Now()
	return snapshotWatchlist(w), nil
}

func (s *WatchlistStore) getOrCreateLocked(userID string) *domain.Watchlist {
	if w, ok := s.watchlists[userID]; ok {
		return w
	}
	now := time.Now()
	w := &domain.Watchlist{
		UserID:    userID,
		StockIDs:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.watchlists[userID] = w
	return w
}

func snapshotWatchlist(w *domain.Watchlist) domain.Watchlist {
	cp := *w
	cp.StockIDs = make([]string, len(w.StockIDs))
	copy(cp.StockIDs, w.StockIDs)
	return cp
}
