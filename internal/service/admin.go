package service

import (
	"github.com/shopspring/decimal"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/store"
)

// RecentTransaction is a journal entry enriched with the user and stock
// it references, for the admin dashboard.
type RecentTransaction struct {
	Transaction *domain.Transaction
	UserName    string
	UserEmail   string
	Symbol      string
	CompanyName string
}

// PlatformStats aggregates platform-wide activity for the admin
// dashboard.
type PlatformStats struct {
	TotalUsers         int
	TotalStocks        int
	TotalTransactions  int
	BuyVolume          decimal.Decimal
	SellVolume         decimal.Decimal
	RecentTransactions []RecentTransaction
}

// AdminService serves the administrator views: the user roster and
// aggregate platform statistics.
type AdminService struct {
	users        *store.UserStore
	stocks       *store.StockStore
	transactions *store.TransactionStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(users *store.UserStore, stocks *store.StockStore, transactions *store.TransactionStore) *AdminService {
	return &AdminService{
		users:        users,
		stocks:       stocks,
		transactions: transactions,
	}
}

// Users returns all registered users, newest first. Balance on the
// returned users mutates under each user's Mu; readers take the lock
// before touching it.
func (s *AdminService) Users() []*domain.User {
	return s.users.List()
}

// Stats returns platform totals, aggregate buy/sell volume, and the 10
// most recent transactions with user and stock info joined on. Removed
// stocks fall back to the journal's symbol snapshot.
func (s *AdminService) Stats() *PlatformStats {
	const recentCount = 10

	recent := make([]RecentTransaction, 0, recentCount)
	for _, t := range s.transactions.Recent(recentCount) {
		rt := RecentTransaction{
			Transaction: t,
			Symbol:      t.Symbol,
		}
		if user, err := s.users.Get(t.UserID); err == nil {
			user.Mu.Lock()
			rt.UserName = user.Name
			rt.UserEmail = user.Email
			user.Mu.Unlock()
		}
		if stock, err := s.stocks.Get(t.StockID); err == nil {
			rt.Symbol = stock.Symbol
			rt.CompanyName = stock.CompanyName
		}
		recent = append(recent, rt)
	}

	return &PlatformStats{
		TotalUsers:         s.users.Count(),
		TotalStocks:        s.stocks.Count(true),
		TotalTransactions:  s.transactions.Count(),
		BuyVolume:          s.transactions.VolumeByKind(domain.KindBuy),
		SellVolume:         s.transactions.VolumeByKind(domain.KindSell),
		RecentTransactions: recent,
	}
}
