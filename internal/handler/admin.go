package handler

import (
	"net/http"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/service"
)

// AdminHandler handles HTTP requests for the admin dashboard.
type AdminHandler struct {
	adminSvc *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminSvc *service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// userListResponse is the JSON response for GET /api/admin/users.
type userListResponse struct {
	Users []userResponse `json:"users"`
	Total int            `json:"total"`
}

// recentTransactionResponse is one enriched journal entry in the stats
// response.
type recentTransactionResponse struct {
	transactionResponse
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
	CompanyName string `json:"company_name"`
}

// statsResponse is the JSON response for GET /api/admin/stats.
type statsResponse struct {
	TotalUsers         int                         `json:"total_users"`
	TotalStocks        int                         `json:"total_stocks"`
	TotalTransactions  int                         `json:"total_transactions"`
	BuyVolume          float64                     `json:"buy_volume"`
	SellVolume         float64                     `json:"sell_volume"`
	RecentTransactions []recentTransactionResponse `json:"recent_transactions"`
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users := h.adminSvc.Users()
	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	WriteJSON(w, http.StatusOK, userListResponse{
		Users: resp,
		Total: len(resp),
	})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.adminSvc.Stats()

	recent := make([]recentTransactionResponse, len(stats.RecentTransactions))
	for i, rt := range stats.RecentTransactions {
		rec := toTransactionResponse(rt.Transaction)
		rec.Symbol = rt.Symbol
		recent[i] = recentTransactionResponse{
			transactionResponse: rec,
			UserName:            rt.UserName,
			UserEmail:           rt.UserEmail,
			CompanyName:         rt.CompanyName,
		}
	}

	WriteJSON(w, http.StatusOK, statsResponse{
		TotalUsers:         stats.TotalUsers,
		TotalStocks:        stats.TotalStocks,
		TotalTransactions:  stats.TotalTransactions,
		BuyVolume:          domain.AmountToFloat(stats.BuyVolume),
		SellVolume:         domain.AmountToFloat(stats.SellVolume),
		RecentTransactions: recent,
	})
}
