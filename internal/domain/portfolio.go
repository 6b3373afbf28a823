package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents a user's position in a single stock. Symbol and
// CompanyName are snapshots taken at first purchase so the position stays
// readable if the stock is later removed from the catalog.
type Holding struct {
	StockID     string
	Symbol      string
	CompanyName string
	Quantity    int64
	AvgCost     decimal.Decimal // quantity-weighted average purchase price
}

// Portfolio is the complete set of one user's holdings. Zero-quantity
// holdings are never retained. Access is guarded by the owning user's Mu.
type Portfolio struct {
	UserID        string
	Holdings      []*Holding
	TotalInvested decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPortfolio creates an empty portfolio for the given user.
func NewPortfolio(userID string) *Portfolio {
	now := time.Now()
	return &Portfolio{
		UserID:        userID,
		Holdings:      []*Holding{},
		TotalInvested: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// FindHolding returns the holding for the given stock ID, or nil.
func (p *Portfolio) FindHolding(stockID string) *Holding {
	for _, h := range p.Holdings {
		if h.StockID == stockID {
			return h
		}
	}
	return nil
}

// RemoveHolding deletes the holding for the given stock ID, if present.
func (p *Portfolio) RemoveHolding(stockID string) {
	for i, h := range p.Holdings {
		if h.StockID == stockID {
			p.Holdings = append(p.Holdings[:i], p.Holdings[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the portfolio. Trade results carry clones
// so callers can read them after the owning user's lock is released.
func (p *Portfolio) Clone() *Portfolio {
	cp := *p
	cp.Holdings = make([]*Holding, len(p.Holdings))
	for i, h := range p.Holdings {
		hc := *h
		cp.Holdings[i] = &hc
	}
	return &cp
}

// RecomputeInvested recalculates TotalInvested as the full sum of
// avgCost * quantity over all holdings, settled at cents. Always a
// full recomputation, never an incremental adjustment, so the total
// cannot drift from the holdings it summarizes. Settling at cents
// absorbs the truncation a repeating-decimal average cost picks up at
// decimal.DivisionPrecision: 10 at 50.00 plus 5 at 60.00 invests
// exactly 800.00, not 53.33... * 15.
func (p *Portfolio) RecomputeInvested() {
	total := decimal.Zero
	for _, h := range p.Holdings {
		total = total.Add(h.AvgCost.Mul(decimal.NewFromInt(h.Quantity)))
	}
	p.TotalInvested = total.Round(2)
}
