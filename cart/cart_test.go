package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/azzam1122112-dot/grocery-system/models"
)

func product(id uint, code string, price string, stock int) models.Product {
	return models.Product{
		ID:        id,
		Code:      code,
		Name:      "product " + code,
		SalePrice: decimal.RequireFromString(price),
		Stock:     stock,
	}
}

func TestAddAppendsAndMerges(t *testing.T) {
	s := NewStore()
	p := product(1, "P001", "5.00", 10)

	if err := s.Add(7, p, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(7, p, 2); err != nil {
		t.Fatalf("Add merge: %v", err)
	}

	entries := s.Entries(7)
	if len(entries) != 1 {
		t.Fatalf("expected 1 merged entry, got %d", len(entries))
	}
	if entries[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", entries[0].Quantity)
	}
	if want := decimal.RequireFromString("25.00"); !entries[0].LineTotal.Equal(want) {
		t.Errorf("line total = %s, want %s", entries[0].LineTotal, want)
	}
	if want := decimal.RequireFromString("25.00"); !s.Total(7).Equal(want) {
		t.Errorf("total = %s, want %s", s.Total(7), want)
	}
}

func TestAddRejectsOverReservedStock(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		first    int
		second   int
		wantFail bool
	}{
		{name: "fits exactly", stock: 10, first: 4, second: 6, wantFail: false},
		{name: "one over", stock: 10, first: 4, second: 7, wantFail: true},
		{name: "first add over stock", stock: 2, first: 3, wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			p := product(1, "P001", "5.00", tt.stock)

			err := s.Add(1, p, tt.first)
			if tt.second == 0 {
				if tt.wantFail != (err != nil) {
					t.Fatalf("first add err = %v, wantFail %v", err, tt.wantFail)
				}
				return
			}
			if err != nil {
				t.Fatalf("first add: %v", err)
			}

			before := s.Entries(1)
			err = s.Add(1, p, tt.second)
			if tt.wantFail {
				var stockErr *models.InsufficientStockError
				if !errors.As(err, &stockErr) {
					t.Fatalf("expected InsufficientStockError, got %v", err)
				}
				if stockErr.Available != tt.stock-tt.first {
					t.Errorf("available = %d, want %d", stockErr.Available, tt.stock-tt.first)
				}
				// a failed add must not mutate the cart
				after := s.Entries(1)
				if len(after) != len(before) || after[0].Quantity != before[0].Quantity {
					t.Errorf("cart changed after failed add: %+v -> %+v", before, after)
				}
			} else if err != nil {
				t.Fatalf("second add: %v", err)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	s := NewStore()
	if err := s.Add(1, product(1, "P001", "5.00", 10), 1); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(1, product(2, "P002", "2.50", 10), 2); err != nil {
		t.Fatal(err)
	}

	if err := s.Remove(1, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Remove(5) err = %v, want ErrIndexOutOfRange", err)
	}
	if err := s.Remove(1, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Remove(-1) err = %v, want ErrIndexOutOfRange", err)
	}

	if err := s.Remove(1, 0); err != nil {
		t.Fatalf("Remove(0): %v", err)
	}
	entries := s.Entries(1)
	if len(entries) != 1 || entries[0].ProductID != 2 {
		t.Errorf("unexpected entries after remove: %+v", entries)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()
	p := product(1, "P001", "5.00", 10)

	if err := s.Add(1, p, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(2, p, 9); err != nil {
		t.Fatal(err)
	}

	// user 2's reservation must not count against user 1
	if got := s.Reserved(1, 1); got != 2 {
		t.Errorf("Reserved(user 1) = %d, want 2", got)
	}

	s.Clear(1)
	if len(s.Entries(1)) != 0 {
		t.Error("clear left entries behind")
	}
	if len(s.Entries(2)) != 1 {
		t.Error("clear of user 1 touched user 2's cart")
	}
}

func TestTotalNeverNegative(t *testing.T) {
	s := NewStore()
	if !s.Total(99).Equal(decimal.Zero) {
		t.Errorf("empty cart total = %s, want 0", s.Total(99))
	}
}
