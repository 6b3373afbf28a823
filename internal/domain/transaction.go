package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the side of an executed trade.
type TransactionKind string

const (
	KindBuy  TransactionKind = "buy"
	KindSell TransactionKind = "sell"
)

// Valid returns true for a recognized transaction kind.
func (k TransactionKind) Valid() bool {
	return k == KindBuy || k == KindSell
}

// Transaction is an immutable journal record of one executed trade.
// Symbol is a snapshot taken at execution; PriceAtExecution is the
// catalog price at the instant the trade ran. Records are created once
// and never mutated or deleted.
type Transaction struct {
	ID               string
	UserID           string
	StockID          string
	Symbol           string
	Kind             TransactionKind
	Quantity         int64
	PriceAtExecution decimal.Decimal
	TotalAmount      decimal.Decimal // Quantity * PriceAtExecution
	CreatedAt        time.Time
}
