package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// SymbolRegex validates ticker symbols: 1-10 characters, uppercase
// letters with optional dot-separated class suffix (e.g. BRK.B).
var SymbolRegex = regexp.MustCompile(`^[A-Z]{1,6}(\.[A-Z]{1,4})?$`)

// PricePoint is a single entry in a stock's price history.
type PricePoint struct {
	Date   time.Time
	Price  decimal.Decimal
	Volume int64
}

// Stock represents a tradable catalog entry.
type Stock struct {
	ID            string
	Symbol        string
	CompanyName   string
	Price         decimal.Decimal
	PreviousPrice decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	MarketCap     int64
	Sector        string
	Volume        int64
	Active        bool
	History       []PricePoint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecomputeChange updates Change and ChangePercent from the current and
// previous price. ChangePercent is rounded to 2 decimal places; both are
// zero when no previous price is recorded.
func (s *Stock) RecomputeChange() {
	if s.PreviousPrice.IsPositive() {
		s.Change = s.Price.Sub(s.PreviousPrice)
		s.ChangePercent = s.Change.Div(s.PreviousPrice).Mul(decimal.NewFromInt(100)).Round(2)
	}
}
