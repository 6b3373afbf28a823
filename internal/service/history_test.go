package service

import (
	"errors"
	"testing"

	"github.com/sbstocks/stocksim/internal/domain"
)

func historyFixture(t *testing.T) *tradeEnv {
	t.Helper()
	e := newTradeEnv()
	e.addUser(t, "user-1", "100000")
	e.addStock(t, "aapl", "AAPL", "100", true)
	e.addStock(t, "msft", "MSFT", "200", true)

	trades := []struct {
		stockID string
		qty     int64
		sell    bool
	}{
		{"aapl", 10, false},
		{"msft", 5, false},
		{"aapl", 4, true},
		{"msft", 2, false},
		{"aapl", 6, true},
	}
	for _, tr := range trades {
		var err error
		if tr.sell {
			_, err = e.svc.ExecuteSell("user-1", tr.stockID, tr.qty)
		} else {
			_, err = e.svc.ExecuteBuy("user-1", tr.stockID, tr.qty)
		}
		if err != nil {
			t.Fatalf("trade %+v: %v", tr, err)
		}
	}
	return e
}

func TestHistory_NewestFirst(t *testing.T) {
	e := historyFixture(t)

	page, err := e.svc.History(HistoryRequest{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("total = %d, want 5", page.Total)
	}

	wantKinds := []domain.TransactionKind{
		domain.KindSell, domain.KindBuy, domain.KindSell, domain.KindBuy, domain.KindBuy,
	}
	wantSymbols := []string{"AAPL", "MSFT", "AAPL", "MSFT", "AAPL"}
	for i, rec := range page.Transactions {
		if rec.Transaction.Kind != wantKinds[i] {
			t.Errorf("record %d kind = %s, want %s", i, rec.Transaction.Kind, wantKinds[i])
		}
		if rec.Transaction.Symbol != wantSymbols[i] {
			t.Errorf("record %d symbol = %s, want %s", i, rec.Transaction.Symbol, wantSymbols[i])
		}
	}
}

func TestHistory_KindFilter(t *testing.T) {
	e := historyFixture(t)

	buys, err := e.svc.History(HistoryRequest{UserID: "user-1", Kind: "buy"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buys.Total != 3 {
		t.Errorf("buy total = %d, want 3", buys.Total)
	}
	for _, rec := range buys.Transactions {
		if rec.Transaction.Kind != domain.KindBuy {
			t.Errorf("unexpected %s record in buy filter", rec.Transaction.Kind)
		}
	}

	sells, err := e.svc.History(HistoryRequest{UserID: "user-1", Kind: "sell"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sells.Total != 2 {
		t.Errorf("sell total = %d, want 2", sells.Total)
	}
}

func TestHistory_InvalidKind(t *testing.T) {
	e := historyFixture(t)

	_, err := e.svc.History(HistoryRequest{UserID: "user-1", Kind: "short"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestHistory_Pagination(t *testing.T) {
	e := historyFixture(t)

	page, err := e.svc.History(HistoryRequest{UserID: "user-1", Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || page.Page != 2 {
		t.Fatalf("total/pages/page = %d/%d/%d, want 5/3/2", page.Total, page.TotalPages, page.Page)
	}
	if len(page.Transactions) != 2 {
		t.Fatalf("got %d records, want 2", len(page.Transactions))
	}

	// Past the last page: empty records but the same totals.
	past, err := e.svc.History(HistoryRequest{UserID: "user-1", Page: 9, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(past.Transactions) != 0 || past.Total != 5 {
		t.Errorf("past-end page: %d records, total %d", len(past.Transactions), past.Total)
	}
}

func TestHistory_JoinsLiveStockInfo(t *testing.T) {
	e := historyFixture(t)
	e.setPrice(t, "aapl", "150")

	page, err := e.svc.History(HistoryRequest{UserID: "user-1", Kind: "buy", Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := page.Transactions[0]
	if rec.Stock == nil {
		t.Fatal("stock info missing")
	}
	if rec.Stock.Symbol != "MSFT" {
		t.Errorf("joined symbol = %s, want MSFT", rec.Stock.Symbol)
	}
}

func TestHistory_DeletedStockLeavesNilInfo(t *testing.T) {
	e := historyFixture(t)
	if err := e.stocks.Delete("aapl"); err != nil {
		t.Fatalf("delete stock: %v", err)
	}

	page, err := e.svc.History(HistoryRequest{UserID: "user-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, rec := range page.Transactions {
		if rec.Transaction.Symbol == "AAPL" {
			if rec.Stock != nil {
				t.Error("expected nil stock info for deleted stock")
			}
		} else if rec.Stock == nil {
			t.Errorf("missing stock info for %s", rec.Transaction.Symbol)
		}
	}
	// The journal snapshot still carries the symbol.
	if page.Transactions[0].Transaction.Symbol == "" {
		t.Error("journal symbol snapshot lost")
	}
}

func TestHistory_UnknownUser(t *testing.T) {
	e := newTradeEnv()

	if _, err := e.svc.History(HistoryRequest{UserID: "ghost"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
