package handler

import (
	"errors"
	"net/http"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/service"
)

// TradeHandler handles HTTP requests for trade execution and history.
type TradeHandler struct {
	tradeSvc *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeSvc *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc}
}

// tradeRequest is the JSON request body for buy and sell.
type tradeRequest struct {
	StockID  string `json:"stock_id"`
	Quantity int64  `json:"quantity"`
}

// transactionResponse is the public view of a journal entry.
type transactionResponse struct {
	ID               string  `json:"id"`
	StockID          string  `json:"stock_id"`
	Symbol           string  `json:"symbol"`
	Type             string  `json:"type"`
	Quantity         int64   `json:"quantity"`
	PriceAtExecution float64 `json:"price_at_execution"`
	TotalAmount      float64 `json:"total_amount"`
	CreatedAt        string  `json:"created_at"`
}

// holdingResponse is one portfolio position in a trade response.
type holdingResponse struct {
	StockID     string  `json:"stock_id"`
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"company_name"`
	Quantity    int64   `json:"quantity"`
	AvgCost     float64 `json:"avg_cost"`
}

// tradeResponse is the JSON response for buy and sell.
type tradeResponse struct {
	Transaction   transactionResponse `json:"transaction"`
	NewBalance    float64             `json:"new_balance"`
	Holdings      []holdingResponse   `json:"holdings"`
	TotalInvested float64             `json:"total_invested"`
}

// historyRecordResponse is one journal entry in the history listing, with
// live stock info joined on when the stock is still in the catalog.
type historyRecordResponse struct {
	transactionResponse
	Stock *historyStockResponse `json:"stock"`
}

// historyStockResponse is the joined live stock info.
type historyStockResponse struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"company_name"`
	Price       float64 `json:"price"`
}

// historyResponse is the JSON response for GET /api/transactions.
type historyResponse struct {
	Transactions []historyRecordResponse `json:"transactions"`
	Total        int                     `json:"total"`
	TotalPages   int                     `json:"total_pages"`
	Page         int                     `json:"page"`
}

func toTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:               t.ID,
		StockID:          t.StockID,
		Symbol:           t.Symbol,
		Type:             string(t.Kind),
		Quantity:         t.Quantity,
		PriceAtExecution: domain.AmountToFloat(t.PriceAtExecution),
		TotalAmount:      domain.AmountToFloat(t.TotalAmount),
		CreatedAt:        t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toTradeResponse(result *service.TradeResult) tradeResponse {
	holdings := make([]holdingResponse, len(result.Portfolio.Holdings))
	for i, h := range result.Portfolio.Holdings {
		holdings[i] = holdingResponse{
			StockID:     h.StockID,
			Symbol:      h.Symbol,
			CompanyName: h.CompanyName,
			Quantity:    h.Quantity,
			AvgCost:     domain.AmountToFloat(h.AvgCost),
		}
	}
	return tradeResponse{
		Transaction:   toTransactionResponse(result.Transaction),
		NewBalance:    domain.AmountToFloat(result.NewBalance),
		Holdings:      holdings,
		TotalInvested: domain.AmountToFloat(result.Portfolio.TotalInvested),
	}
}

// Buy handles POST /api/transactions/buy.
func (h *TradeHandler) Buy(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, h.tradeSvc.ExecuteBuy)
}

// Sell handles POST /api/transactions/sell.
func (h *TradeHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.execute(w, r, h.tradeSvc.ExecuteSell)
}

func (h *TradeHandler) execute(w http.ResponseWriter, r *http.Request, op func(userID, stockID string, qty int64) (*service.TradeResult, error)) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Not authorized, no token")
		return
	}

	var req tradeRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := op(user.ID, req.StockID, req.Quantity)
	if err != nil {
		mapTradeError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toTradeResponse(result))
}

// History handles GET /api/transactions.
func (h *TradeHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Not authorized, no token")
		return
	}

	q := r.URL.Query()
	page, okPage := intQuery(w, q.Get("page"), "page")
	if !okPage {
		return
	}
	limit, okLimit := intQuery(w, q.Get("limit"), "limit")
	if !okLimit {
		return
	}

	result, err := h.tradeSvc.History(service.HistoryRequest{
		UserID: user.ID,
		Kind:   q.Get("type"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		mapTradeError(w, err)
		return
	}

	records := make([]historyRecordResponse, len(result.Transactions))
	for i, rec := range result.Transactions {
		record := historyRecordResponse{
			transactionResponse: toTransactionResponse(rec.Transaction),
		}
		if rec.Stock != nil {
			record.Stock = &historyStockResponse{
				Symbol:      rec.Stock.Symbol,
				CompanyName: rec.Stock.CompanyName,
				Price:       domain.AmountToFloat(rec.Stock.Price),
			}
		}
		records[i] = record
	}

	WriteJSON(w, http.StatusOK, historyResponse{
		Transactions: records,
		Total:        result.Total,
		TotalPages:   result.TotalPages,
		Page:         result.Page,
	})
}

// mapTradeError maps domain errors to HTTP responses for trade endpoints.
// Trade business failures report 400 so the client can show the message
// as a form error.
func mapTradeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	var fundsErr *domain.InsufficientFundsError
	if errors.As(err, &fundsErr) {
		WriteError(w, http.StatusBadRequest, "insufficient_funds", fundsErr.Error())
		return
	}

	var sharesErr *domain.InsufficientSharesError
	if errors.As(err, &sharesErr) {
		WriteError(w, http.StatusBadRequest, "insufficient_shares", sharesErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, "invalid_quantity", "Quantity must be at least 1")
	case errors.Is(err, domain.ErrStockInactive):
		WriteError(w, http.StatusBadRequest, "stock_inactive", "Stock is not available for trading")
	case errors.Is(err, domain.ErrNoPortfolio):
		WriteError(w, http.StatusBadRequest, "no_portfolio", "No portfolio found")
	case errors.Is(err, domain.ErrNotHeld):
		WriteError(w, http.StatusBadRequest, "stock_not_held", "You don't own this stock")
	case errors.Is(err, domain.ErrStockNotFound):
		WriteError(w, http.StatusNotFound, "stock_not_found", "Stock not found")
	case errors.Is(err, domain.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "user_not_found", "User not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
