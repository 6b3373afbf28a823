package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sbstocks/stocksim/internal/auth"
	"github.com/sbstocks/stocksim/internal/config"
	"github.com/sbstocks/stocksim/internal/handler"
	"github.com/sbstocks/stocksim/internal/seed"
	"github.com/sbstocks/stocksim/internal/service"
	"github.com/sbstocks/stocksim/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instantiate stores.
	userStore := store.NewUserStore()
	stockStore := store.NewStockStore()
	portfolioStore := store.NewPortfolioStore()
	transactionStore := store.NewTransactionStore()
	watchlistStore := store.NewWatchlistStore()

	// Session tokens.
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Services.
	svcs := handler.Services{
		Auth:      service.NewAuthService(userStore, portfolioStore, cfg.StartingBalance, cfg.BcryptCost),
		Stock:     service.NewStockService(stockStore),
		Trade:     service.NewTradeService(userStore, stockStore, portfolioStore, transactionStore),
		Portfolio: service.NewPortfolioService(userStore, stockStore, portfolioStore),
		Watchlist: service.NewWatchlistService(stockStore, watchlistStore),
		Admin:     service.NewAdminService(userStore, stockStore, transactionStore),
	}

	// Seed the catalog and admin account.
	if cfg.Seed {
		if err := seed.Run(userStore, stockStore, portfolioStore, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost, logger); err != nil {
			logger.Error("seeding failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Router.
	router := handler.NewRouter(svcs, tokens, cfg.SecureCookie, logger)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
