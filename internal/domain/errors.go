package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrUserNotFound       = errors.New("user_not_found")
	ErrEmailTaken         = errors.New("email_already_registered")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrStockNotFound      = errors.New("stock_not_found")
	ErrSymbolTaken        = errors.New("symbol_already_exists")
	ErrStockInactive      = errors.New("stock_inactive")
	ErrNoPortfolio        = errors.New("no_portfolio")
	ErrNotHeld            = errors.New("stock_not_held")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrAlreadyWatched     = errors.New("stock_already_in_watchlist")
	ErrWatchlistNotFound  = errors.New("watchlist_not_found")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InsufficientFundsError is returned when a buy's total cost exceeds the
// user's available balance. It carries both amounts for display.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required $%s, available $%s",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// InsufficientSharesError is returned when a sell's quantity exceeds the
// quantity held. It carries the owned quantity and symbol for display.
type InsufficientSharesError struct {
	Symbol string
	Owned  int64
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares: you own %d shares of %s", e.Owned, e.Symbol)
}
