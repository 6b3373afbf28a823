package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/store"
)

// TradeResult is the outcome of a successful buy or sell: the journal
// record that was created, the account's new balance, and a snapshot of
// the updated portfolio.
type TradeResult struct {
	Transaction *domain.Transaction
	NewBalance  decimal.Decimal
	Portfolio   *domain.Portfolio
}

// TradeService executes buy and sell orders against the simulated
// catalog price. Each trade's three mutations (balance, holdings,
// journal) run under the owning user's lock, with every validation
// performed before the first mutation, so a failed trade leaves all
// state untouched and concurrent trades for one account serialize.
type TradeService struct {
	users        *store.UserStore
	stocks       *store.StockStore
	portfolios   *store.PortfolioStore
	transactions *store.TransactionStore
}

// NewTradeService creates a new TradeService.
func NewTradeService(
	users *store.UserStore,
	stocks *store.StockStore,
	portfolios *store.PortfolioStore,
	transactions *store.TransactionStore,
) *TradeService {
	return &TradeService{
		users:        users,
		stocks:       stocks,
		portfolios:   portfolios,
		transactions: transactions,
	}
}

// ExecuteBuy purchases quantity shares of the stock at its current
// catalog price, debiting the user's balance and merging the shares into
// the portfolio at the quantity-weighted average cost.
func (s *TradeService) ExecuteBuy(userID, stockID string, quantity int64) (*TradeResult, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	user.Mu.Lock()
	defer user.Mu.Unlock()

	stock, err := s.stocks.Get(stockID)
	if err != nil {
		return nil, err
	}
	if !stock.Active {
		return nil, domain.ErrStockInactive
	}

	qty := decimal.NewFromInt(quantity)
	cost := stock.Price.Mul(qty)

	if user.Balance.LessThan(cost) {
		return nil, &domain.InsufficientFundsError{
			Required:  cost,
			Available: user.Balance,
		}
	}

	portfolio := s.portfolios.GetOrCreate(userID)

	// All validations passed; mutate.
	user.Balance = user.Balance.Sub(cost)

	if h := portfolio.FindHolding(stockID); h != nil {
		// Merge at the quantity-weighted average cost.
		oldQty := decimal.NewFromInt(h.Quantity)
		newQty := oldQty.Add(qty)
		h.AvgCost = h.AvgCost.Mul(oldQty).Add(stock.Price.Mul(qty)).Div(newQty)
		h.Quantity += quantity
	} else {
		portfolio.Holdings = append(portfolio.Holdings, &domain.Holding{
			StockID:     stock.ID,
			Symbol:      stock.Symbol,
			CompanyName: stock.CompanyName,
			Quantity:    quantity,
			AvgCost:     stock.Price,
		})
	}

	portfolio.RecomputeInvested()
	portfolio.UpdatedAt = time.Now()

	txn := s.journal(user.ID, stock, domain.KindBuy, quantity, cost)

	return &TradeResult{
		Transaction: txn,
		NewBalance:  user.Balance,
		Portfolio:   portfolio.Clone(),
	}, nil
}

// ExecuteSell sells quantity shares of the stock at its current catalog
// price, crediting the user's balance. A holding that reaches zero
// quantity is removed from the portfolio entirely.
func (s *TradeService) ExecuteSell(userID, stockID string, quantity int64) (*TradeResult, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}

	user.Mu.Lock()
	defer user.Mu.Unlock()

	stock, err := s.stocks.Get(stockID)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.portfolios.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	h := portfolio.FindHolding(stockID)
	if h == nil {
		return nil, domain.ErrNotHeld
	}
	if h.Quantity < quantity {
		return nil, &domain.InsufficientSharesError{
			Symbol: stock.Symbol,
			Owned:  h.Quantity,
		}
	}

	revenue := stock.Price.Mul(decimal.NewFromInt(quantity))

	// All validations passed; mutate.
	user.Balance = user.Balance.Add(revenue)

	h.Quantity -= quantity
	if h.Quantity == 0 {
		portfolio.RemoveHolding(stockID)
	}

	portfolio.RecomputeInvested()
	portfolio.UpdatedAt = time.Now()

	txn := s.journal(user.ID, stock, domain.KindSell, quantity, revenue)

	return &TradeResult{
		Transaction: txn,
		NewBalance:  user.Balance,
		Portfolio:   portfolio.Clone(),
	}, nil
}

// journal appends the immutable record of an executed trade.
func (s *TradeService) journal(userID string, stock domain.Stock, kind domain.TransactionKind, quantity int64, total decimal.Decimal) *domain.Transaction {
	txn := &domain.Transaction{
		ID:               uuid.NewString(),
		UserID:           userID,
		StockID:          stock.ID,
		Symbol:           stock.Symbol,
		Kind:             kind,
		Quantity:         quantity,
		PriceAtExecution: stock.Price,
		TotalAmount:      total,
		CreatedAt:        time.Now(),
	}
	s.transactions.Append(txn)
	return txn
}
