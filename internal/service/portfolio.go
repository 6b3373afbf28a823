package service

import (
	"github.com/shopspring/decimal"

	"github.com/sbstocks/stocksim/internal/store"
)

// HoldingView is one portfolio position valued at the live catalog price.
type HoldingView struct {
	StockID           string
	Symbol            string
	CompanyName       string
	Quantity          int64
	AvgCost           decimal.Decimal
	CurrentPrice      decimal.Decimal
	CurrentValue      decimal.Decimal
	InvestedValue     decimal.Decimal
	ProfitLoss        decimal.Decimal
	ProfitLossPercent decimal.Decimal
}

// PortfolioView is the complete valuation of a user's portfolio.
type PortfolioView struct {
	Holdings          []HoldingView
	TotalInvested     decimal.Decimal
	TotalCurrentValue decimal.Decimal
	TotalProfitLoss   decimal.Decimal
	AvailableBalance  decimal.Decimal
}

// PortfolioService derives the current value and profit/loss of a user's
// holdings from live catalog prices. Read-only: it never mutates the
// portfolio.
type PortfolioService struct {
	users      *store.UserStore
	stocks     *store.StockStore
	portfolios *store.PortfolioStore
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(users *store.UserStore, stocks *store.StockStore, portfolios *store.PortfolioStore) *PortfolioService {
	return &PortfolioService{
		users:      users,
		stocks:     stocks,
		portfolios: portfolios,
	}
}

// GetPortfolio values each holding at the live catalog price. When a
// holding's stock has been removed from the catalog, its average cost is
// used as the price so the view still resolves instead of failing or
// dropping the position.
func (s *PortfolioService) GetPortfolio(userID string) (*PortfolioView, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	user.Mu.Lock()
	defer user.Mu.Unlock()

	portfolio := s.portfolios.GetOrCreate(userID)

	hundred := decimal.NewFromInt(100)
	totalCurrent := decimal.Zero
	holdings := make([]HoldingView, 0, len(portfolio.Holdings))

	for _, h := range portfolio.Holdings {
		currentPrice := h.AvgCost
		if stock, err := s.stocks.Get(h.StockID); err == nil {
			currentPrice = stock.Price
		}

		qty := decimal.NewFromInt(h.Quantity)
		currentValue := currentPrice.Mul(qty)
		investedValue := h.AvgCost.Mul(qty)
		profitLoss := currentValue.Sub(investedValue)

		profitLossPercent := decimal.Zero
		if investedValue.IsPositive() {
			profitLossPercent = profitLoss.Div(investedValue).Mul(hundred).Round(2)
		}

		totalCurrent = totalCurrent.Add(currentValue)

		holdings = append(holdings, HoldingView{
			StockID:           h.StockID,
			Symbol:            h.Symbol,
			CompanyName:       h.CompanyName,
			Quantity:          h.Quantity,
			AvgCost:           h.AvgCost,
			CurrentPrice:      currentPrice,
			CurrentValue:      currentValue,
			InvestedValue:     investedValue,
			ProfitLoss:        profitLoss,
			ProfitLossPercent: profitLossPercent,
		})
	}

	return &PortfolioView{
		Holdings:          holdings,
		TotalInvested:     portfolio.TotalInvested,
		TotalCurrentValue: totalCurrent,
		TotalProfitLoss:   totalCurrent.Sub(portfolio.TotalInvested),
		AvailableBalance:  user.Balance,
	}, nil
}
