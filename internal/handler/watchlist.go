package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/service"
)

// WatchlistHandler handles HTTP requests for the watchlist.
type WatchlistHandler struct {
	watchlistSvc *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(watchlistSvc *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistSvc: watchlistSvc}
}

// watchlistAddRequest is the JSON request body for POST /api/watchlist/add.
type watchlistAddRequest struct {
	StockID string `json:"stock_id"`
}

// watchlistResponse is the JSON response for watchlist endpoints.
type watchlistResponse struct {
	Stocks []stockResponse `json:"stocks"`
}

func toWatchlistResponse(view *service.WatchlistView) watchlistResponse {
	stocks := make([]stockResponse, len(view.Stocks))
	for i, s := range view.Stocks {
		stocks[i] = toStockResponse(s)
	}
	return watchlistResponse{Stocks: stocks}
}

// Get handles GET /api/watchlist.
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Not authorized, no token")
		return
	}
	WriteJSON(w, http.StatusOK, toWatchlistResponse(h.watchlistSvc.Get(user.ID)))
}

// Add handles POST /api/watchlist/add.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Not authorized, no token")
		return
	}

	var req watchlistAddRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	view, err := h.watchlistSvc.Add(user.ID, req.StockID)
	if err != nil {
		mapWatchlistError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toWatchlistResponse(view))
}

// Remove handles DELETE /api/watchlist/remove/{stock_id}.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Not authorized, no token")
		return
	}

	view, err := h.watchlistSvc.Remove(user.ID, chi.URLParam(r, "stock_id"))
	if err != nil {
		mapWatchlistError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toWatchlistResponse(view))
}

// mapWatchlistError maps domain errors to HTTP responses for watchlist
// endpoints.
func mapWatchlistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyWatched):
		WriteError(w, http.StatusBadRequest, "stock_already_in_watchlist", "Stock already in watchlist")
	case errors.Is(err, domain.ErrWatchlistNotFound):
		WriteError(w, http.StatusNotFound, "watchlist_not_found", "Watchlist not found")
	case errors.Is(err, domain.ErrStockNotFound):
		WriteError(w, http.StatusNotFound, "stock_not_found", "Stock not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
