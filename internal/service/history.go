package service

import (
	"github.com/shopspring/decimal"

	"github.com/sbstocks/stocksim/internal/domain"
)

// StockInfo is the live catalog data joined onto a history record.
// Nil when the stock has since been removed from the catalog; the
// record's own symbol snapshot still identifies it.
type StockInfo struct {
	Symbol      string
	CompanyName string
	Price       decimal.Decimal
}

// HistoryRecord is one journal entry plus joined stock info.
type HistoryRecord struct {
	Transaction *domain.Transaction
	Stock       *StockInfo
}

// HistoryPage is one page of a user's transaction history.
type HistoryPage struct {
	Transactions []HistoryRecord
	Total        int
	TotalPages   int
	Page         int
}

// HistoryRequest holds the filters for a history query. Kind is "buy",
// "sell", or empty for both. Page and Limit fall back to 1 and 20.
type HistoryRequest struct {
	UserID string
	Kind   string
	Page   int
	Limit  int
}

// History returns a page of the user's transactions, newest first.
func (s *TradeService) History(req HistoryRequest) (*HistoryPage, error) {
	if _, err := s.users.Get(req.UserID); err != nil {
		return nil, err
	}

	var kind *domain.TransactionKind
	if req.Kind != "" {
		k := domain.TransactionKind(req.Kind)
		if !k.Valid() {
			return nil, &domain.ValidationError{Message: "type must be \"buy\" or \"sell\""}
		}
		kind = &k
	}

	page, limit := normalizePage(req.Page, req.Limit)

	txns, total := s.transactions.ListByUser(req.UserID, kind, page, limit)

	records := make([]HistoryRecord, 0, len(txns))
	for _, t := range txns {
		rec := HistoryRecord{Transaction: t}
		if stock, err := s.stocks.Get(t.StockID); err == nil {
			rec.Stock = &StockInfo{
				Symbol:      stock.Symbol,
				CompanyName: stock.CompanyName,
				Price:       stock.Price,
			}
		}
		records = append(records, rec)
	}

	return &HistoryPage{
		Transactions: records,
		Total:        total,
		TotalPages:   totalPages(total, limit),
		Page:         page,
	}, nil
}

// normalizePage applies the 1-based page and limit defaults and caps.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// totalPages is ceil(total / limit), zero when nothing matched.
func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}
