package store

import (
	"errors"
	"testing"

	"github.com/sbstocks/stocksim/internal/domain"
)

func TestWatchlistStore_GetOrCreate(t *testing.T) {
	s := NewWatchlistStore()

	w := s.GetOrCreate("user-1")
	if w.UserID != "user-1" {
		t.Errorf("got user %q, want user-1", w.UserID)
	}
	if len(w.StockIDs) != 0 {
		t.Errorf("new watchlist has %d stocks, want 0", len(w.StockIDs))
	}
}

func TestWatchlistStore_Add(t *testing.T) {
	s := NewWatchlistStore()

	w, err := s.Add("user-1", "stock-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.StockIDs) != 1 || w.StockIDs[0] != "stock-1" {
		t.Errorf("watchlist = %v, want [stock-1]", w.StockIDs)
	}

	if _, err := s.Add("user-1", "stock-1"); !errors.Is(err, domain.ErrAlreadyWatched) {
		t.Fatalf("expected ErrAlreadyWatched, got %v", err)
	}
}

func TestWatchlistStore_Remove(t *testing.T) {
	s := NewWatchlistStore()
	_, _ = s.Add("user-1", "stock-1")
	_, _ = s.Add("user-1", "stock-2")

	w, err := s.Remove("user-1", "stock-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.StockIDs) != 1 || w.StockIDs[0] != "stock-2" {
		t.Errorf("watchlist = %v, want [stock-2]", w.StockIDs)
	}

	// Removing an absent stock is a no-op.
	if _, err := s.Remove("user-1", "missing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Removing from a user with no watchlist fails.
	if _, err := s.Remove("nobody", "stock-1"); !errors.Is(err, domain.ErrWatchlistNotFound) {
		t.Fatalf("expected ErrWatchlistNotFound, got %v", err)
	}
}

func TestWatchlistStore_SnapshotIsolation(t *testing.T) {
	s := NewWatchlistStore()
	w1, _ := s.Add("user-1", "stock-1")

	// Mutating the returned snapshot must not affect the stored list.
	w1.StockIDs[0] = "tampered"

	w2 := s.GetOrCreate("user-1")
	if w2.StockIDs[0] != "stock-1" {
		t.Errorf("stored watchlist changed to %v after snapshot mutation", w2.StockIDs)
	}
}
