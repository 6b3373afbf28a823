package service

import (
	"errors"
	"testing"

	"github.com/sbstocks/stocksim/internal/domain"
)

func newPortfolioService(e *tradeEnv) *PortfolioService {
	return NewPortfolioService(e.users, e.stocks, e.portfolios)
}

func TestGetPortfolio_Empty(t *testing.T) {
	e := newTradeEnv()
	e.addUser(t, "user-1", "1000")
	svc := newPortfolioService(e)

	view, err := svc.GetPortfolio("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Holdings) != 0 {
		t.Errorf("got %d holdings, want 0", len(view.Holdings))
	}
	equalDecimal(t, "total invested", view.TotalInvested, "0")
	equalDecimal(t, "total current value", view.TotalCurrentValue, "0")
	equalDecimal(t, "total profit/loss", view.TotalProfitLoss, "0")
	equalDecimal(t, "available balance", view.AvailableBalance, "1000")
}

func TestGetPortfolio_ValuesAtLivePrice(t *testing.T) {
	e := newTradeEnv()
	e.addUser(t, "user-1", "10000")
	e.addStock(t, "aapl", "AAPL", "100", true)
	svc := newPortfolioService(e)

	if _, err := e.svc.ExecuteBuy("user-1", "aapl", 10); err != nil {
		t.Fatalf("buy: %v", err)
	}
	e.setPrice(t, "aapl", "120")

	view, err := svc.GetPortfolio("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(view.Holdings))
	}
	h := view.Holdings[0]
	equalDecimal(t, "avg cost", h.AvgCost, "100")
	equalDecimal(t, "current price", h.CurrentPrice, "120")
	equalDecimal(t, "current value", h.CurrentValue, "1200")
	equalDecimal(t, "invested value", h.InvestedValue, "1000")
	equalDecimal(t, "profit/loss", h.ProfitLoss, "200")
	equalDecimal(t, "profit/loss percent", h.ProfitLossPercent, "20")

	equalDecimal(t, "total invested", view.TotalInvested, "1000")
	equalDecimal(t, "total current value", view.TotalCurrentValue, "1200")
	equalDecimal(t, "total profit/loss", view.TotalProfitLoss, "200")
	equalDecimal(t, "available balance", view.AvailableBalance, "9000")
}

func TestGetPortfolio_PercentRounding(t *testing.T) {
	e := newTradeEnv()
	e.addUser(t, "user-1", "10000")
	e.addStock(t, "aapl", "AAPL", "30", true)
	svc := newPortfolioService(e)

	if _, err := e.svc.ExecuteBuy("user-1", "aapl", 3); err != nil {
		t.Fatalf("buy: %v", err)
	}
	e.setPrice(t, "aapl", "31")

	view, err := svc.GetPortfolio("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 3/90 = 3.333...%, rounded to two decimal places.
	equalDecimal(t, "profit/loss percent", view.Holdings[0].ProfitLossPercent, "3.33")
}

func TestGetPortfolio_DeletedStockFallsBackToAvgCost(t *testing.T) {
	e := newTradeEnv()
	e.addUser(t, "user-1", "10000")
	e.addStock(t, "aapl", "AAPL", "100", true)
	svc := newPortfolioService(e)

	if _, err := e.svc.ExecuteBuy("user-1", "aapl", 5); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if err := e.stocks.Delete("aapl"); err != nil {
		t.Fatalf("delete stock: %v", err)
	}

	view, err := svc.GetPortfolio("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(view.Holdings))
	}
	h := view.Holdings[0]
	equalDecimal(t, "current price", h.CurrentPrice, "100")
	equalDecimal(t, "current value", h.CurrentValue, "500")
	equalDecimal(t, "profit/loss", h.ProfitLoss, "0")
	equalDecimal(t, "profit/loss percent", h.ProfitLossPercent, "0")
}

func TestGetPortfolio_MultipleHoldingsTotals(t *testing.T) {
	e := newTradeEnv()
	e.addUser(t, "user-1", "10000")
	e.addStock(t, "aapl", "AAPL", "100", true)
	e.addStock(t, "msft", "MSFT", "200", true)
	svc := newPortfolioService(e)

	if _, err := e.svc.ExecuteBuy("user-1", "aapl", 10); err != nil {
		t.Fatalf("buy aapl: %v", err)
	}
	if _, err := e.svc.ExecuteBuy("user-1", "msft", 5); err != nil {
		t.Fatalf("buy msft: %v", err)
	}
	e.setPrice(t, "aapl", "90")
	e.setPrice(t, "msft", "250")

	view, err := svc.GetPortfolio("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalDecimal(t, "total invested", view.TotalInvested, "2000")
	// 10*90 + 5*250
	equalDecimal(t, "total current value", view.TotalCurrentValue, "2150")
	equalDecimal(t, "total profit/loss", view.TotalProfitLoss, "150")
}

func TestGetPortfolio_UnknownUser(t *testing.T) {
	e := newTradeEnv()
	svc := newPortfolioService(e)

	if _, err := svc.GetPortfolio("ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
