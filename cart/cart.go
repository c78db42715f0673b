package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/azzam1122112-dot/grocery-system/models"
)

var ErrIndexOutOfRange = errors.New("cart index out of range")

// Entry is one pending sale line. It lives only in memory until checkout
// commits it as a SaleItem; unit price is a snapshot of the product's sale
// price at add time.
type Entry struct {
	ProductID uint            `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Store keeps one cart per authenticated user. Carts are private to their
// user; the mutex only guards the map against concurrent requests from the
// same session.
type Store struct {
	mu    sync.Mutex
	carts map[uint][]Entry
}

func NewStore() *Store {
	return &Store{carts: make(map[uint][]Entry)}
}

// Entries returns a copy of the user's cart in insertion order.
func (s *Store) Entries(userID uint) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, len(s.carts[userID]))
	copy(entries, s.carts[userID])
	return entries
}

// Reserved is the quantity of a product already sitting in the user's cart.
func (s *Store) Reserved(userID, productID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reserved(s.carts[userID], productID)
}

func reserved(entries []Entry, productID uint) int {
	total := 0
	for _, e := range entries {
		if e.ProductID == productID {
			total += e.Quantity
		}
	}
	return total
}

// Add merges quantity into an existing entry for the same product (line total
// recomputed from the current sale price) or appends a new entry. It fails
// with InsufficientStockError when the requested quantity plus what the cart
// already reserves exceeds the product's stock, leaving the cart untouched.
func (s *Store) Add(userID uint, p models.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.carts[userID]
	available := p.Stock - reserved(entries, p.ID)
	if quantity > available {
		return &models.InsufficientStockError{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Requested: quantity,
			Available: available,
		}
	}

	for i, e := range entries {
		if e.ProductID == p.ID {
			newQty := e.Quantity + quantity
			entries[i].Quantity = newQty
			entries[i].UnitPrice = p.SalePrice
			entries[i].LineTotal = p.SalePrice.Mul(decimal.NewFromInt(int64(newQty)))
			return nil
		}
	}

	s.carts[userID] = append(entries, Entry{
		ProductID: p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: p.SalePrice,
		LineTotal: p.SalePrice.Mul(decimal.NewFromInt(int64(quantity))),
	})
	return nil
}

// Remove deletes the entry at position index.
func (s *Store) Remove(userID uint, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.carts[userID]
	if index < 0 || index >= len(entries) {
		return ErrIndexOutOfRange
	}
	s.carts[userID] = append(entries[:index], entries[index+1:]...)
	return nil
}

// Clear drops the user's cart entirely.
func (s *Store) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Total sums the user's line totals.
func (s *Store) Total(userID uint) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.carts[userID])
}

// Total sums line totals over a cart snapshot.
func Total(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.LineTotal)
	}
	return total
}
