// Package seed loads the initial stock catalog and the admin account
// into empty stores.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbstocks/stocksim/internal/domain"
	"github.com/sbstocks/stocksim/internal/store"
)

// catalogEntry is one stock of the built-in catalog.
type catalogEntry struct {
	Symbol      string
	CompanyName string
	Price       float64
	MarketCap   int64
	Sector      string
	Volume      int64
}

var catalog = []catalogEntry{
	{"AAPL", "Apple Inc.", 178.72, 2800000000000, "Technology", 54230000},
	{"MSFT", "Microsoft Corporation", 378.91, 2810000000000, "Technology", 22340000},
	{"GOOGL", "Alphabet Inc.", 141.80, 1770000000000, "Technology", 23450000},
	{"AMZN", "Amazon.com Inc.", 178.25, 1860000000000, "Consumer Cyclical", 45670000},
	{"NVDA", "NVIDIA Corporation", 721.33, 1780000000000, "Technology", 41230000},
	{"META", "Meta Platforms Inc.", 484.03, 1240000000000, "Technology", 14560000},
	{"TSLA", "Tesla Inc.", 188.71, 601000000000, "Consumer Cyclical", 98760000},
	{"BRK.B", "Berkshire Hathaway", 407.19, 878000000000, "Financial Services", 3450000},
	{"JPM", "JPMorgan Chase & Co.", 196.47, 566000000000, "Financial Services", 8900000},
	{"V", "Visa Inc.", 281.52, 577000000000, "Financial Services", 6780000},
	{"JNJ", "Johnson & Johnson", 156.74, 378000000000, "Healthcare", 7890000},
	{"UNH", "UnitedHealth Group", 527.40, 487000000000, "Healthcare", 3210000},
	{"PG", "Procter & Gamble Co.", 160.99, 379000000000, "Consumer Defensive", 6540000},
	{"MA", "Mastercard Inc.", 457.12, 428000000000, "Financial Services", 3210000},
	{"HD", "The Home Depot Inc.", 381.94, 378000000000, "Consumer Cyclical", 3450000},
	{"XOM", "Exxon Mobil Corporation", 104.76, 430000000000, "Energy", 15670000},
	{"DIS", "The Walt Disney Company", 111.25, 203000000000, "Communication Services", 9870000},
	{"NFLX", "Netflix Inc.", 605.88, 263000000000, "Communication Services", 5430000},
	{"KO", "The Coca-Cola Company", 60.22, 260000000000, "Consumer Defensive", 12340000},
	{"PFE", "Pfizer Inc.", 27.43, 154000000000, "Healthcare", 34560000},
}

// adminBalance is the simulated balance of the seeded admin account.
var adminBalance = decimal.NewFromInt(1000000)

// Run seeds the stock catalog and the admin account. The catalog is only
// seeded when the store is empty, so restarting a warm deployment does
// not duplicate it. The admin is only created when no user has the
// configured email.
func Run(users *store.UserStore, stocks *store.StockStore, portfolios *store.PortfolioStore, adminEmail, adminPassword string, bcryptCost int, logger *slog.Logger) error {
	if stocks.Count(false) > 0 {
		logger.Info("catalog already populated, skipping seed")
	} else {
		for _, entry := range catalog {
			if err := stocks.Create(newStock(entry)); err != nil {
				return fmt.Errorf("seed stock %s: %w", entry.Symbol, err)
			}
		}
		logger.Info("seeded stock catalog", slog.Int("stocks", len(catalog)))
	}

	if _, err := users.GetByEmail(adminEmail); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &domain.User{
		ID:           uuid.NewString(),
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Balance:      adminBalance,
		CreatedAt:    time.Now(),
	}
	if err := users.Create(admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	portfolios.Create(domain.NewPortfolio(admin.ID))
	logger.Info("seeded admin account", slog.String("email", adminEmail))

	return nil
}

// newStock builds a catalog stock with a generated 31-day price history
// and a synthetic previous close within 2% of the current price.
func newStock(entry catalogEntry) *domain.Stock {
	now := time.Now()
	price := decimal.NewFromFloat(entry.Price)

	previous := jitter(entry.Price, 0.04)

	stock := &domain.Stock{
		ID:            uuid.NewString(),
		Symbol:        entry.Symbol,
		CompanyName:   entry.CompanyName,
		Price:         price,
		PreviousPrice: previous,
		MarketCap:     entry.MarketCap,
		Sector:        entry.Sector,
		Volume:        entry.Volume,
		Active:        true,
		History:       history(entry.Price, now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	stock.RecomputeChange()
	return stock
}

// history generates one price point per day for the last 31 days, each
// within 3% of the base price.
func history(basePrice float64, now time.Time) []domain.PricePoint {
	points := make([]domain.PricePoint, 0, 31)
	for i := 30; i >= 0; i-- {
		points = append(points, domain.PricePoint{
			Date:   now.AddDate(0, 0, -i),
			Price:  jitter(basePrice, 0.06),
			Volume: rand.Int63n(50000000) + 1000000,
		})
	}
	return points
}

// jitter returns the price moved by a random factor in ±spread/2,
// rounded to cents.
func jitter(price, spread float64) decimal.Decimal {
	factor := 1 + (rand.Float64()-0.5)*spread
	return decimal.NewFromFloat(price * factor).Round(2)
}
