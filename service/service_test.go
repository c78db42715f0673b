package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/azzam1122112-dot/grocery-system/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Debtor{},
		&models.Sale{},
		&models.SaleItem{},
		&models.DebtPayment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(t *testing.T, db *gorm.DB, code, cost, sale string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Code:      code,
		Name:      "product " + code,
		CostPrice: dec(cost),
		SalePrice: dec(sale),
		Stock:     stock,
		IsActive:  true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}
	return p
}

func seedSale(t *testing.T, db *gorm.DB, method models.PaymentMethod, debtorID *uint, at time.Time, items ...models.SaleItem) models.Sale {
	t.Helper()
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	s := models.Sale{
		CreatedAt:     at,
		PaymentMethod: method,
		DebtorID:      debtorID,
		TotalAmount:   total,
		Items:         items,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatal(err)
	}
	return s
}

func item(p models.Product, qty int) models.SaleItem {
	return models.SaleItem{
		ProductID: p.ID,
		Quantity:  qty,
		UnitPrice: p.SalePrice,
		LineTotal: p.SalePrice.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func TestDashboardTotalsAndProfit(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now().UTC()

	a := seedProduct(t, db, "A", "3.00", "5.00", 20)
	b := seedProduct(t, db, "B", "1.00", "2.00", 20)

	debtor := models.Debtor{Name: "Khaled"}
	if err := db.Create(&debtor).Error; err != nil {
		t.Fatal(err)
	}

	seedSale(t, db, models.PaymentCash, nil, now, item(a, 3))          // 15.00
	seedSale(t, db, models.PaymentTransfer, nil, now, item(b, 2))      // 4.00
	seedSale(t, db, models.PaymentDebt, &debtor.ID, now, item(a, 1))   // 5.00
	if err := db.Create(&models.DebtPayment{DebtorID: debtor.ID, Amount: dec("2.00"), PaymentMethod: models.PaymentCash, PaidAt: now}).Error; err != nil {
		t.Fatal(err)
	}

	report, err := NewService(db).Dashboard(context.Background(), DashboardFilter{})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"total_amount", report.Totals.TotalAmount, "24.00"},
		{"total_cash", report.Totals.TotalCash, "15.00"},
		{"total_transfer", report.Totals.TotalTransfer, "4.00"},
		{"total_debt", report.Totals.TotalDebt, "5.00"},
		{"total_outstanding", report.Totals.TotalOutstanding, "3.00"},
		// cost of goods: 4×3.00 + 2×1.00 = 14.00
		{"total_profit", report.Totals.TotalProfit, "10.00"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}

	if len(report.TopProducts) != 2 || report.TopProducts[0].Code != "A" {
		t.Errorf("unexpected top products: %+v", report.TopProducts)
	}
	if report.TopProducts[0].TotalQty != 4 {
		t.Errorf("top product qty = %d, want 4", report.TopProducts[0].TotalQty)
	}
	if len(report.LowProducts) != 2 || report.LowProducts[0].Code != "B" {
		t.Errorf("unexpected low products: %+v", report.LowProducts)
	}
}

func TestDashboardDateFilter(t *testing.T) {
	db := setupTestDB(t)
	a := seedProduct(t, db, "A", "1.00", "2.00", 20)

	now := time.Now().UTC()
	old := now.AddDate(0, -1, 0)
	seedSale(t, db, models.PaymentCash, nil, now, item(a, 1)) // 2.00
	seedSale(t, db, models.PaymentCash, nil, old, item(a, 5)) // 10.00, outside range

	start := now.AddDate(0, 0, -1)
	report, err := NewService(db).Dashboard(context.Background(), DashboardFilter{Start: &start})
	if err != nil {
		t.Fatal(err)
	}

	if !report.Totals.TotalAmount.Equal(dec("2.00")) {
		t.Errorf("filtered total = %s, want 2.00", report.Totals.TotalAmount)
	}
	if len(report.TopProducts) != 1 || report.TopProducts[0].TotalQty != 1 {
		t.Errorf("filtered top products = %+v", report.TopProducts)
	}
}

func TestDashboardStockAlerts(t *testing.T) {
	db := setupTestDB(t)

	seedProduct(t, db, "LOW", "1.00", "2.00", 2)
	seedProduct(t, db, "OK", "1.00", "2.00", 50)
	seedProduct(t, db, "OUT", "1.00", "2.00", 0)
	inactive := seedProduct(t, db, "GONE", "1.00", "2.00", 0)
	db.Model(&inactive).Update("is_active", false)

	report, err := NewService(db).Dashboard(context.Background(), DashboardFilter{})
	if err != nil {
		t.Fatal(err)
	}

	if len(report.LowStock) != 1 || report.LowStock[0].Code != "LOW" {
		t.Errorf("low stock = %+v, want only LOW", report.LowStock)
	}
	if len(report.OutOfStock) != 1 || report.OutOfStock[0].Code != "OUT" {
		t.Errorf("out of stock = %+v, want only OUT", report.OutOfStock)
	}
}

func TestDebtorSummaries(t *testing.T) {
	db := setupTestDB(t)
	a := seedProduct(t, db, "A", "1.00", "10.00", 50)

	big := models.Debtor{Name: "Big"}
	small := models.Debtor{Name: "Small"}
	clean := models.Debtor{Name: "Clean"} // no debt sales at all
	for _, d := range []*models.Debtor{&big, &small, &clean} {
		if err := db.Create(d).Error; err != nil {
			t.Fatal(err)
		}
	}

	now := time.Now().UTC()
	seedSale(t, db, models.PaymentDebt, &big.ID, now, item(a, 3))   // 30.00
	seedSale(t, db, models.PaymentDebt, &small.ID, now, item(a, 1)) // 10.00
	if err := db.Create(&models.DebtPayment{DebtorID: small.ID, Amount: dec("4.00"), PaymentMethod: models.PaymentTransfer, PaidAt: now}).Error; err != nil {
		t.Fatal(err)
	}

	summaries, global, err := NewService(db).DebtorSummaries(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2 (debtors without debt sales excluded)", len(summaries))
	}
	if summaries[0].Name != "Big" || !summaries[0].Remaining.Equal(dec("30.00")) {
		t.Errorf("first summary = %+v, want Big with 30.00 remaining", summaries[0])
	}
	if summaries[1].Name != "Small" || !summaries[1].Remaining.Equal(dec("6.00")) {
		t.Errorf("second summary = %+v, want Small with 6.00 remaining", summaries[1])
	}

	if !global.Remaining.Equal(dec("36.00")) {
		t.Errorf("global outstanding = %s, want 36.00", global.Remaining)
	}
	if !global.TotalPaid.Equal(dec("4.00")) {
		t.Errorf("global paid = %s, want 4.00", global.TotalPaid)
	}
}
