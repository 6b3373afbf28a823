package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/store"
)

// ListStocksRequest holds the filters for a catalog listing. Sector
// filters by exact sector; Search matches symbol or company name
// case-insensitively. Page and Limit fall back to 1 and 20.
type ListStocksRequest struct {
	Sector string
	Search string
	Page   int
	Limit  int
}

// StockPage is one page of the catalog listing, in symbol order.
type StockPage struct {
	Stocks     []domain.Stock
	Total      int
	TotalPages int
	Page       int
}

// CreateStockRequest represents the input for catalog creation.
type CreateStockRequest struct {
	Symbol      string
	CompanyName string
	Price       float64
	Sector      string
	MarketCap   int64
	Volume      int64
}

// UpdateStockRequest is a partial catalog update; nil fields are left
// unchanged.
type UpdateStockRequest struct {
	CompanyName *string
	Price       *float64
	Sector      *string
	MarketCap   *int64
	Volume      *int64
	Active      *bool
}

// StockService handles catalog queries and administrative maintenance.
type StockService struct {
	stocks *store.StockStore
}

// NewStockService creates a new StockService.
func NewStockService(stocks *store.StockStore) *StockService {
	return &StockService{stocks: stocks}
}

// List returns a page of active stocks in ascending symbol order.
func (s *StockService) List(req ListStocksRequest) *StockPage {
	page, limit := normalizePage(req.Page, req.Limit)
	search := strings.ToLower(strings.TrimSpace(req.Search))

	filtered := make([]domain.Stock, 0)
	for _, st := range s.stocks.ListOrdered() {
		if !st.Active {
			continue
		}
		if req.Sector != "" && st.Sector != req.Sector {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(st.Symbol), search) &&
			!strings.Contains(strings.ToLower(st.CompanyName), search) {
			continue
		}
		filtered = append(filtered, st)
	}

	total := len(filtered)

	start := (page - 1) * limit
	if start >= total {
		filtered = []domain.Stock{}
	} else {
		end := start + limit
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}

	return &StockPage{
		Stocks:     filtered,
		Total:      total,
		TotalPages: totalPages(total, limit),
		Page:       page,
	}
}

// Get returns the stock with the given ID, active or not.
func (s *StockService) Get(id string) (domain.Stock, error) {
	return s.stocks.Get(id)
}

// Sectors returns the distinct sectors of active stocks, sorted.
func (s *StockService) Sectors() []string {
	return s.stocks.Sectors()
}

// Create validates the request and adds the stock to the catalog,
// active, with no history.
func (s *StockService) Create(req CreateStockRequest) (domain.Stock, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if !domain.SymbolRegex.MatchString(symbol) {
		return domain.Stock{}, &domain.ValidationError{Message: "symbol must be 1-10 uppercase letters"}
	}

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return domain.Stock{}, &domain.ValidationError{Message: "company name is required"}
	}

	if req.Price <= 0 {
		return domain.Stock{}, &domain.ValidationError{Message: "price must be greater than 0"}
	}
	price, err := domain.ParseAmount(req.Price)
	if err != nil {
		return domain.Stock{}, &domain.ValidationError{Message: "price must have at most 2 decimal places"}
	}

	sector := strings.TrimSpace(req.Sector)
	if sector == "" {
		return domain.Stock{}, &domain.ValidationError{Message: "sector is required"}
	}

	if req.MarketCap < 0 || req.Volume < 0 {
		return domain.Stock{}, &domain.ValidationError{Message: "market cap and volume cannot be negative"}
	}

	now := time.Now()
	stock := &domain.Stock{
		ID:          uuid.NewString(),
		Symbol:      symbol,
		CompanyName: companyName,
		Price:       price,
		Sector:      sector,
		MarketCap:   req.MarketCap,
		Volume:      req.Volume,
		Active:      true,
		History:     []domain.PricePoint{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.stocks.Create(stock); err != nil {
		return domain.Stock{}, err
	}
	return *stock, nil
}

// Update applies a partial update. A price change records the old price
// as PreviousPrice, appends it to the history, and recomputes the change
// figures.
func (s *StockService) Update(id string, req UpdateStockRequest) (domain.Stock, error) {
	return s.stocks.Update(id, func(st *domain.Stock) error {
		if req.CompanyName != nil {
			name := strings.TrimSpace(*req.CompanyName)
			if name == "" {
				return &domain.ValidationError{Message: "company name cannot be empty"}
			}
			st.CompanyName = name
		}
		if req.Sector != nil {
			sector := strings.TrimSpace(*req.Sector)
			if sector == "" {
				return &domain.ValidationError{Message: "sector cannot be empty"}
			}
			st.Sector = sector
		}
		if req.MarketCap != nil {
			if *req.MarketCap < 0 {
				return &domain.ValidationError{Message: "market cap cannot be negative"}
			}
			st.MarketCap = *req.MarketCap
		}
		if req.Volume != nil {
			if *req.Volume < 0 {
				return &domain.ValidationError{Message: "volume cannot be negative"}
			}
			st.Volume = *req.Volume
		}
		if req.Active != nil {
			st.Active = *req.Active
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				return &domain.ValidationError{Message: "price must be greater than 0"}
			}
			price, err := domain.ParseAmount(*req.Price)
			if err != nil {
				return &domain.ValidationError{Message: "price must have at most 2 decimal places"}
			}
			if !price.Equal(st.Price) {
				// Record the outgoing price before replacing it.
				st.History = append(st.History, domain.PricePoint{
					Date:   time.Now(),
					Price:  st.Price,
					Volume: st.Volume,
				})
				st.PreviousPrice = st.Price
				st.Price = price
				st.RecomputeChange()
			}
		}
		st.UpdatedAt = time.Now()
		return nil
	})
}

// Delete removes the stock from the catalog. Holdings and journal
// entries keep their snapshots of its symbol and name.
func (s *StockService) Delete(id string) error {
	return s.stocks.Delete(id)
}
