package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/sbstocks/stocksim/internal/domain"
)

// Property: a successful buy of q shares at price p moves the balance by
// exactly p*q, and the matching sell at the same price moves it back
// exactly. No rounding drift, ever.

func TestProperty_TradeConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		priceCents := rapid.Int64Range(1, 1_000_000).Draw(t, "priceCents")
		qty := rapid.Int64Range(1, 1000).Draw(t, "qty")

		price := decimal.New(priceCents, -2)
		start := price.Mul(decimal.NewFromInt(qty)).Add(decimal.NewFromInt(1000))

		e := newTradeEnv()
		u := e.addUser(t, "user-1", start.String())
		e.addStock(t, "s", "TEST", price.String(), true)

		buy, err := e.svc.ExecuteBuy("user-1", "s", qty)
		if err != nil {
			t.Fatalf("buy failed: %v", err)
		}
		wantAfterBuy := start.Sub(price.Mul(decimal.NewFromInt(qty)))
		if !buy.NewBalance.Equal(wantAfterBuy) {
			t.Fatalf("balance after buy = %s, want %s", buy.NewBalance, wantAfterBuy)
		}

		sell, err := e.svc.ExecuteSell("user-1", "s", qty)
		if err != nil {
			t.Fatalf("sell failed: %v", err)
		}
		if !sell.NewBalance.Equal(start) {
			t.Fatalf("balance after round trip = %s, want %s", sell.NewBalance, start)
		}
		if !u.Balance.Equal(start) {
			t.Fatalf("stored balance after round trip = %s, want %s", u.Balance, start)
		}
	})
}

// Property: buying q1 at p1 then q2 at p2 yields the quantity-weighted
// average cost (p1*q1 + p2*q2) / (q1+q2).

func TestProperty_WeightedAverageCost(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p1 := decimal.New(rapid.Int64Range(1, 100_000).Draw(t, "p1Cents"), -2)
		p2 := decimal.New(rapid.Int64Range(1, 100_000).Draw(t, "p2Cents"), -2)
		q1 := rapid.Int64Range(1, 500).Draw(t, "q1")
		q2 := rapid.Int64Range(1, 500).Draw(t, "q2")

		e := newTradeEnv()
		e.addUser(t, "user-1", "100000000")
		e.addStock(t, "s", "TEST", p1.String(), true)

		if _, err := e.svc.ExecuteBuy("user-1", "s", q1); err != nil {
			t.Fatalf("first buy: %v", err)
		}
		e.setPrice(t, "s", p2.String())
		result, err := e.svc.ExecuteBuy("user-1", "s", q2)
		if err != nil {
			t.Fatalf("second buy: %v", err)
		}

		d1, d2 := decimal.NewFromInt(q1), decimal.NewFromInt(q2)
		want := p1.Mul(d1).Add(p2.Mul(d2)).Div(d1.Add(d2))

		h := result.Portfolio.Holdings[0]
		if h.Quantity != q1+q2 {
			t.Fatalf("quantity = %d, want %d", h.Quantity, q1+q2)
		}
		if !h.AvgCost.Equal(want) {
			t.Fatalf("avg cost = %s, want %s", h.AvgCost, want)
		}
	})
}

// Property: no sequence of buys and sells can drive the balance or a
// holding negative, failed operations leave all state unchanged, and
// totalInvested always equals the recomputed sum over current holdings.

func TestProperty_TradeInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTradeEnv()
		e.addUser(t, "user-1", "10000")
		symbols := []string{"AAA", "BBB", "CCC"}
		for i, sym := range symbols {
			priceCents := rapid.Int64Range(100, 50_000).Draw(t, fmt.Sprintf("price%d", i))
			e.addStock(t, sym, sym, decimal.New(priceCents, -2).String(), true)
		}

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			label := fmt.Sprintf("op%d", i)
			stockID := rapid.SampledFrom(symbols).Draw(t, label+"stock")
			qty := rapid.Int64Range(1, 20).Draw(t, label+"qty")
			isBuy := rapid.Bool().Draw(t, label+"buy")

			before := snapshotState(t, e)

			var err error
			if isBuy {
				_, err = e.svc.ExecuteBuy("user-1", stockID, qty)
			} else {
				_, err = e.svc.ExecuteSell("user-1", stockID, qty)
			}

			if err != nil {
				// Failed trades must be all-or-nothing.
				var fundsErr *domain.InsufficientFundsError
				var sharesErr *domain.InsufficientSharesError
				if !errors.As(err, &fundsErr) && !errors.As(err, &sharesErr) && !errors.Is(err, domain.ErrNotHeld) {
					t.Fatalf("unexpected error kind: %v", err)
				}
				after := snapshotState(t, e)
				if before != after {
					t.Fatalf("state changed across failed trade:\nbefore %v\nafter  %v", before, after)
				}
			}

			checkInvariants(t, e)
		}
	})
}

type stateSnapshot struct {
	balance  string
	holdings string
	txnCount int
}

func snapshotState(t *rapid.T, e *tradeEnv) stateSnapshot {
	u, err := e.users.Get("user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	pf, err := e.portfolios.GetByUser("user-1")
	if err != nil {
		t.Fatalf("get portfolio: %v", err)
	}
	holdings := ""
	for _, h := range pf.Holdings {
		holdings += fmt.Sprintf("%s:%d@%s;", h.StockID, h.Quantity, h.AvgCost)
	}
	return stateSnapshot{
		balance:  u.Balance.String(),
		holdings: holdings,
		txnCount: e.transactions.Count(),
	}
}

func checkInvariants(t *rapid.T, e *tradeEnv) {
	u, err := e.users.Get("user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.Balance.IsNegative() {
		t.Fatalf("balance went negative: %s", u.Balance)
	}

	pf, err := e.portfolios.GetByUser("user-1")
	if err != nil {
		t.Fatalf("get portfolio: %v", err)
	}

	recomputed := decimal.Zero
	for _, h := range pf.Holdings {
		if h.Quantity <= 0 {
			t.Fatalf("holding %s has non-positive quantity %d", h.StockID, h.Quantity)
		}
		if h.AvgCost.IsNegative() {
			t.Fatalf("holding %s has negative avg cost %s", h.StockID, h.AvgCost)
		}
		recomputed = recomputed.Add(h.AvgCost.Mul(decimal.NewFromInt(h.Quantity)))
	}
	// TotalInvested is settled at cents after every recomputation.
	if !pf.TotalInvested.Equal(recomputed.Round(2)) {
		t.Fatalf("totalInvested = %s, recomputed sum = %s", pf.TotalInvested, recomputed.Round(2))
	}
}

// Property: selling a position down to zero removes the holding; selling
// any smaller amount keeps it.

func TestProperty_ZeroQuantityRemoval(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		qty := rapid.Int64Range(1, 100).Draw(t, "qty")
		sellQty := rapid.Int64Range(1, qty).Draw(t, "sellQty")

		e := newTradeEnv()
		e.addUser(t, "user-1", "1000000")
		e.addStock(t, "s", "TEST", "37.50", true)

		if _, err := e.svc.ExecuteBuy("user-1", "s", qty); err != nil {
			t.Fatalf("buy: %v", err)
		}
		result, err := e.svc.ExecuteSell("user-1", "s", sellQty)
		if err != nil {
			t.Fatalf("sell: %v", err)
		}

		h := result.Portfolio.FindHolding("s")
		if sellQty == qty {
			if h != nil {
				t.Fatalf("holding retained with quantity %d after full sell", h.Quantity)
			}
		} else {
			if h == nil {
				t.Fatalf("holding missing after partial sell of %d/%d", sellQty, qty)
			}
			if h.Quantity != qty-sellQty {
				t.Fatalf("quantity = %d, want %d", h.Quantity, qty-sellQty)
			}
		}
	})
}
