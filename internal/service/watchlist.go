package service

import (
	"time"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/store"
)

// WatchlistView is a user's watchlist with live stock data resolved.
// Stocks removed from the catalog are omitted.
type WatchlistView struct {
	UserID    string
	Stocks    []domain.Stock
	UpdatedAt time.Time
}

// WatchlistService maintains per-user stock watchlists.
type WatchlistService struct {
	stocks     *store.StockStore
	watchlists *store.WatchlistStore
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(stocks *store.StockStore, watchlists *store.WatchlistStore) *WatchlistService {
	return &WatchlistService{
		stocks:     stocks,
		watchlists: watchlists,
	}
}

// Get returns the user's watchlist, creating an empty one on first use.
func (s *WatchlistService) Get(userID string) *WatchlistView {
	return s.view(s.watchlists.GetOrCreate(userID))
}

// Add puts a stock on the user's watchlist. The stock must exist and may
// appear at most once.
func (s *WatchlistService) Add(userID, stockID string) (*WatchlistView, error) {
	if _, err := s.stocks.Get(stockID); err != nil {
		return nil, err
	}
	w, err := s.watchlists.Add(userID, stockID)
	if err != nil {
		return nil, err
	}
	return s.view(w), nil
}

// Remove takes a stock off the user's watchlist.
func (s *WatchlistService) Remove(userID, stockID string) (*WatchlistView, error) {
	w, err := s.watchlists.Remove(userID, stockID)
	if err != nil {
		return nil, err
	}
	return s.view(w), nil
}

func (s *WatchlistService) view(w domain.Watchlist) *WatchlistView {
	stocks := make([]domain.Stock, 0, len(w.StockIDs))
	for _, id := range w.StockIDs {
		if stock, err := s.stocks.Get(id); err == nil {
			stocks = append(stocks, stock)
		}
	}
	return &WatchlistView{
		UserID:    w.UserID,
		Stocks:    stocks,
		UpdatedAt: w.UpdatedAt,
	}
}
