package handler

import (
	"net/http"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/service"
)

// PortfolioHandler handles HTTP requests for the portfolio view.
type PortfolioHandler struct {
	portfolioSvc *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioSvc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioSvc: portfolioSvc}
}

// holdingViewResponse is one valued position in the portfolio response.
type holdingViewResponse struct {
	StockID           string  `json:"stock_id"`
	Symbol            string  `json:"symbol"`
	CompanyName       string  `json:"company_name"`
	Quantity          int64   `json:"quantity"`
	AvgCost           float64 `json:"avg_cost"`
	CurrentPrice      float64 `json:"current_price"`
	CurrentValue      float64 `json:"current_value"`
	InvestedValue     float64 `json:"invested_value"`
	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
}

// portfolioResponse is the JSON response for GET /api/portfolio.
type portfolioResponse struct {
	Holdings          []holdingViewResponse `json:"holdings"`
	TotalInvested     float64               `json:"total_invested"`
	TotalCurrentValue float64               `json:"total_current_value"`
	TotalProfitLoss   float64               `json:"total_profit_loss"`
	AvailableBalance  float64               `json:"available_balance"`
}

// Get handles GET /api/portfolio.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Not authorized, no token")
		return
	}

	view, err := h.portfolioSvc.GetPortfolio(user.ID)
	if err != nil {
		mapTradeError(w, err)
		return
	}

	holdings := make([]holdingViewResponse, len(view.Holdings))
	for i, h := range view.Holdings {
		holdings[i] = holdingViewResponse{
			StockID:           h.StockID,
			Symbol:            h.Symbol,
			CompanyName:       h.CompanyName,
			Quantity:          h.Quantity,
			AvgCost:           domain.AmountToFloat(h.AvgCost),
			CurrentPrice:      domain.AmountToFloat(h.CurrentPrice),
			CurrentValue:      domain.AmountToFloat(h.CurrentValue),
			InvestedValue:     domain.AmountToFloat(h.InvestedValue),
			ProfitLoss:        domain.AmountToFloat(h.ProfitLoss),
			ProfitLossPercent: domain.AmountToFloat(h.ProfitLossPercent),
		}
	}

	WriteJSON(w, http.StatusOK, portfolioResponse{
		Holdings:          holdings,
		TotalInvested:     domain.AmountToFloat(view.TotalInvested),
		TotalCurrentValue: domain.AmountToFloat(view.TotalCurrentValue),
		TotalProfitLoss:   domain.AmountToFloat(view.TotalProfitLoss),
		AvailableBalance:  domain.AmountToFloat(view.AvailableBalance),
	})
}
