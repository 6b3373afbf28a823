package store

import (
	"sort"
	"sync"

	"github.com/google/btree"

	"github.com/sbstocks/stocksim/internal/domain"
)

// symbolKey is the ordering key for the catalog's symbol index.
type symbolKey struct {
	Symbol string
	ID     string
}

func symbolLess(a, b symbolKey) bool {
	if a.Symbol != b.Symbol {
		return a.Symbol < b.Symbol
	}
	return a.ID < b.ID
}

// StockStore is a thread-safe in-memory store for the stock catalog,
// with a primary index by ID, a uniqueness index by symbol, and a B-tree
// ordered by symbol so listings come out alphabetical without re-sorting.
//
// Reads return snapshot copies: trade execution records the price at the
// instant it read the snapshot, and later catalog updates cannot race
// with it.
type StockStore struct {
	mu       sync.RWMutex
	stocks   map[string]*domain.Stock
	bySymbol map[string]string // symbol → stock ID
	index    *btree.BTreeG[symbolKey]
}

// NewStockStore creates an empty StockStore.
func NewStockStore() *StockStore {
	const degree = 32
	return &StockStore{
		stocks:   make(map[string]*domain.Stock),
		bySymbol: make(map[string]string),
		index:    btree.NewG[symbolKey](degree, symbolLess),
	}
}

// Create adds a stock to the catalog. It returns domain.ErrSymbolTaken if
// the symbol is already in use.
func (s *StockStore) Create(st *domain.Stock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bySymbol[st.Symbol]; exists {
		return domain.ErrSymbolTaken
	}
	s.stocks[st.ID] = st
	s.bySymbol[st.Symbol] = st.ID
	s.index.ReplaceOrInsert(symbolKey{Symbol: st.Symbol, ID: st.ID})
	return nil
}

// Get retrieves a snapshot of a stock by ID. It returns
// domain.ErrStockNotFound if the stock does not exist.
func (s *StockStore) Get(id string) (domain.Stock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stocks[id]
	if !ok {
		return domain.Stock{}, domain.ErrStockNotFound
	}
	return snapshotStock(st), nil
}

// Update applies mutate to the stock under the write lock. If mutate
// returns an error the stock is left unchanged. Symbol changes are
// re-checked for uniqueness and re-indexed.
func (s *StockStore) Update(id string, mutate func(*domain.Stock) error) (domain.Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stocks[id]
	if !ok {
		return domain.Stock{}, domain.ErrStockNotFound
	}

	oldSymbol := st.Symbol
	updated := snapshotStock(st)
	if err := mutate(&updated); err != nil {
		return domain.Stock{}, err
	}

	if updated.Symbol != oldSymbol {
		if _, exists := s.bySymbol[updated.Symbol]; exists {
			return domain.Stock{}, domain.ErrSymbolTaken
		}
		delete(s.bySymbol, oldSymbol)
		s.bySymbol[updated.Symbol] = id
		s.index.Delete(symbolKey{Symbol: oldSymbol, ID: id})
		s.index.ReplaceOrInsert(symbolKey{Symbol: updated.Symbol, ID: id})
	}

	*st = updated
	return snapshotStock(st), nil
}

// Delete removes a stock from the catalog. It returns
// domain.ErrStockNotFound if the stock does not exist.
func (s *StockStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stocks[id]
	if !ok {
		return domain.ErrStockNotFound
	}
	delete(s.stocks, id)
	delete(s.bySymbol, st.Symbol)
	s.index.Delete(symbolKey{Symbol: st.Symbol, ID: st.ID})
	return nil
}

// ListOrdered returns snapshots of every stock in ascending symbol order.
func (s *StockStore) ListOrdered() []domain.Stock {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stocks := make([]domain.Stock, 0, len(s.stocks))
	s.index.Ascend(func(k symbolKey) bool {
		stocks = append(stocks, snapshotStock(s.stocks[k.ID]))
		return true
	})
	return stocks
}

// Sectors returns the distinct sectors of active stocks, sorted.
func (s *StockStore) Sectors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, st := range s.stocks {
		if st.Active && st.Sector != "" {
			seen[st.Sector] = true
		}
	}
	sectors := make([]string, 0, len(seen))
	for sector := range seen {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)
	return sectors
}

// Count returns the number of stocks; active-only when activeOnly is set.
func (s *StockStore) Count(activeOnly bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !activeOnly {
		return len(s.stocks)
	}
	n := 0
	for _, st := range s.stocks {
		if st.Active {
			n++
		}
	}
	return n
}

// snapshotStock copies a stock, including its history slice, so callers
// cannot observe later in-place mutations.
func snapshotStock(st *domain.Stock) domain.Stock {
	cp := *st
	cp.History = make([]domain.PricePoint, len(st.History))
	copy(cp.History, st.History)
	return cp
}
