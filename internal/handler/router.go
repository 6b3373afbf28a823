package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbstocks/stocksim/internal/auth"
	"github.com/sbstocks/stocksim/internal/service"
)

// Services bundles the service layer for route registration.
type Services struct {
	Auth      *service.AuthService
	Stock     *service.StockService
	Trade     *service.TradeService
	Portfolio *service.PortfolioService
	Watchlist *service.WatchlistService
	Admin     *service.AdminService
}

// NewRouter creates a chi router with all routes registered, request
// logging, and Content-Type validation middleware. secureCookie marks
// the session cookie Secure for TLS deployments.
func NewRouter(svcs Services, tokens *auth.TokenManager, secureCookie bool, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	authH := NewAuthHandler(svcs.Auth, tokens, secureCookie)
	stockH := NewStockHandler(svcs.Stock)
	tradeH := NewTradeHandler(svcs.Trade)
	portfolioH := NewPortfolioHandler(svcs.Portfolio)
	watchlistH := NewWatchlistHandler(svcs.Watchlist)
	adminH := NewAdminHandler(svcs.Admin)

	authed := RequireAuth(tokens, svcs.Auth)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Auth routes.
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/auth/logout", authH.Logout)
			r.Get("/auth/me", authH.Me)
		})

		// Catalog routes. Listing is public; maintenance is admin-only.
		r.Get("/stocks", stockH.List)
		r.Get("/stocks/sectors", stockH.Sectors)
		r.Get("/stocks/{stock_id}", stockH.Get)
		r.Group(func(r chi.Router) {
			r.Use(authed, RequireAdmin)
			r.Post("/stocks", stockH.Create)
			r.Put("/stocks/{stock_id}", stockH.Update)
			r.Delete("/stocks/{stock_id}", stockH.Delete)
		})

		// Trading routes.
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/transactions/buy", tradeH.Buy)
			r.Post("/transactions/sell", tradeH.Sell)
			r.Get("/transactions", tradeH.History)
			r.Get("/portfolio", portfolioH.Get)
			r.Get("/watchlist", watchlistH.Get)
			r.Post("/watchlist/add", watchlistH.Add)
			r.Delete("/watchlist/remove/{stock_id}", watchlistH.Remove)
		})

		// Admin routes.
		r.Group(func(r chi.Router) {
			r.Use(authed, RequireAdmin)
			r.Get("/admin/users", adminH.Users)
			r.Get("/admin/stats", adminH.Stats)
		})
	})

	return r
}
