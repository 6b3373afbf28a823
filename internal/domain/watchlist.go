package domain

import "time"

// Watchlist is a user's list of followed stock IDs, in insertion order.
type Watchlist struct {
	UserID    string
	StockIDs  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains returns true if the stock ID is already on the watchlist.
func (w *Watchlist) Contains(stockID string) bool {
	for _, id := range w.StockIDs {
		if id == stockID {
			return true
		}
	}
	return false
}

// Remove deletes the stock ID from the watchlist, if present.
func (w *Watchlist) Remove(stockID string) {
	for i, id := range w.StockIDs {
		if id == stockID {
			w.StockIDs = append(w.StockIDs[:i], w.StockIDs[i+1:]...)
			return
		}
	}
}
