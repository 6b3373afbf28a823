package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/service"
)

// StockHandler handles HTTP requests for catalog endpoints.
type StockHandler struct {
	stockSvc *service.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockSvc *service.StockService) *StockHandler {
	return &StockHandler{stockSvc: stockSvc}
}

// stockResponse is the public view of a catalog entry.
type stockResponse struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"company_name"`
	Price         float64 `json:"price"`
	PreviousPrice float64 `json:"previous_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	MarketCap     int64   `json:"market_cap"`
	Sector        string  `json:"sector"`
	Volume        int64   `json:"volume"`
	Active        bool    `json:"active"`
	UpdatedAt     string  `json:"updated_at"`
}

// pricePointResponse is one entry of a stock's price history.
type pricePointResponse struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// stockDetailResponse is the single-stock view, with price history.
type stockDetailResponse struct {
	stockResponse
	History []pricePointResponse `json:"historical_data"`
}

// stockListResponse is the JSON response for GET /api/stocks.
type stockListResponse struct {
	Stocks     []stockResponse `json:"stocks"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
}

// createStockRequest is the JSON request body for POST /api/stocks.
type createStockRequest struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"company_name"`
	Price       float64 `json:"price"`
	Sector      string  `json:"sector"`
	MarketCap   int64   `json:"market_cap"`
	Volume      int64   `json:"volume"`
}

// updateStockRequest is the JSON request body for PUT /api/stocks/{stock_id}.
// Omitted fields are left unchanged.
type updateStockRequest struct {
	CompanyName *string  `json:"company_name"`
	Price       *float64 `json:"price"`
	Sector      *string  `json:"sector"`
	MarketCap   *int64   `json:"market_cap"`
	Volume      *int64   `json:"volume"`
	Active      *bool    `json:"active"`
}

func toStockResponse(s domain.Stock) stockResponse {
	return stockResponse{
		ID:            s.ID,
		Symbol:        s.Symbol,
		CompanyName:   s.CompanyName,
		Price:         domain.AmountToFloat(s.Price),
		PreviousPrice: domain.AmountToFloat(s.PreviousPrice),
		Change:        domain.AmountToFloat(s.Change),
		ChangePercent: domain.AmountToFloat(s.ChangePercent),
		MarketCap:     s.MarketCap,
		Sector:        s.Sector,
		Volume:        s.Volume,
		Active:        s.Active,
		UpdatedAt:     s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toStockDetailResponse(s domain.Stock) stockDetailResponse {
	history := make([]pricePointResponse, len(s.History))
	for i, p := range s.History {
		history[i] = pricePointResponse{
			Date:   p.Date.UTC().Format("2006-01-02T15:04:05Z"),
			Price:  domain.AmountToFloat(p.Price),
			Volume: p.Volume,
		}
	}
	return stockDetailResponse{
		stockResponse: toStockResponse(s),
		History:       history,
	}
}

// List handles GET /api/stocks.
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, ok := intQuery(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := intQuery(w, q.Get("limit"), "limit")
	if !ok {
		return
	}

	result := h.stockSvc.List(service.ListStocksRequest{
		Sector: q.Get("sector"),
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	})

	stocks := make([]stockResponse, len(result.Stocks))
	for i, s := range result.Stocks {
		stocks[i] = toStockResponse(s)
	}

	WriteJSON(w, http.StatusOK, stockListResponse{
		Stocks:     stocks,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Page:       result.Page,
	})
}

// Sectors handles GET /api/stocks/sectors.
func (h *StockHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string][]string{"sectors": h.stockSvc.Sectors()})
}

// Get handles GET /api/stocks/{stock_id}.
func (h *StockHandler) Get(w http.ResponseWriter, r *http.Request) {
	stock, err := h.stockSvc.Get(chi.URLParam(r, "stock_id"))
	if err != nil {
		mapStockError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toStockDetailResponse(stock))
}

// Create handles POST /api/stocks.
func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStockRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	stock, err := h.stockSvc.Create(service.CreateStockRequest{
		Symbol:      req.Symbol,
		CompanyName: req.CompanyName,
		Price:       req.Price,
		Sector:      req.Sector,
		MarketCap:   req.MarketCap,
		Volume:      req.Volume,
	})
	if err != nil {
		mapStockError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toStockDetailResponse(stock))
}

// Update handles PUT /api/stocks/{stock_id}.
func (h *StockHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	stock, err := h.stockSvc.Update(chi.URLParam(r, "stock_id"), service.UpdateStockRequest{
		CompanyName: req.CompanyName,
		Price:       req.Price,
		Sector:      req.Sector,
		MarketCap:   req.MarketCap,
		Volume:      req.Volume,
		Active:      req.Active,
	})
	if err != nil {
		mapStockError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toStockDetailResponse(stock))
}

// Delete handles DELETE /api/stocks/{stock_id}.
func (h *StockHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.stockSvc.Delete(chi.URLParam(r, "stock_id")); err != nil {
		mapStockError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Stock removed"})
}

// intQuery parses an optional integer query parameter. Writes a 400 and
// returns ok=false when the value is present but not an integer.
func intQuery(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_error", name+" must be a valid integer")
		return 0, false
	}
	return n, true
}

// mapStockError maps domain errors to HTTP responses for catalog endpoints.
func mapStockError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrSymbolTaken):
		WriteError(w, http.StatusBadRequest, "symbol_already_exists", "Stock with this symbol already exists")
	case errors.Is(err, domain.ErrStockNotFound):
		WriteError(w, http.StatusNotFound, "stock_not_found", "Stock not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
