package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/azzam1122112-dot/grocery-system/models"
)

// ===== Common DTOs =====

type DashboardFilter struct {
	Start *time.Time
	End   *time.Time
}

type Totals struct {
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TotalCash        decimal.Decimal `json:"total_cash"`
	TotalTransfer    decimal.Decimal `json:"total_transfer"`
	TotalDebt        decimal.Decimal `json:"total_debt"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"` // global, not range-bound
	TotalProfit      decimal.Decimal `json:"total_profit"`
}

type ProductSalesRow struct {
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	TotalQty    int64           `json:"total_qty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type DashboardReport struct {
	Totals      Totals            `json:"totals"`
	TopProducts []ProductSalesRow `json:"top_products"`
	LowProducts []ProductSalesRow `json:"low_products"`
	LowStock    []models.Product  `json:"low_stock_products"`
	OutOfStock  []models.Product  `json:"out_of_stock_products"`
}

type DebtorSummary struct {
	DebtorID      uint            `json:"debtor_id"`
	Name          string          `json:"name"`
	Phone         *string         `json:"phone"`
	TotalDebt     decimal.Decimal `json:"total_debt"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Remaining     decimal.Decimal `json:"remaining"`
	LastInvoiceID *uint           `json:"last_invoice_id"`
}

type Balance struct {
	TotalDebt decimal.Decimal `json:"total_debt"`
	TotalPaid decimal.Decimal `json:"total_paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// lowStockThreshold marks products close to running out on the dashboard.
const lowStockThreshold = 5

// ===== Service =====

type Service interface {
	// Dashboard aggregates sales in the given range plus current stock alerts.
	Dashboard(ctx context.Context, f DashboardFilter) (DashboardReport, error)

	// DebtorSummaries lists debtors with outstanding debt plus global ledger totals.
	DebtorSummaries(ctx context.Context) ([]DebtorSummary, Balance, error)
}

type service struct{ db *gorm.DB }

func NewService(db *gorm.DB) Service { return &service{db: db} }

// ===== Implementations =====

func (s *service) Dashboard(ctx context.Context, f DashboardFilter) (DashboardReport, error) {
	db := s.db.WithContext(ctx)
	var report DashboardReport

	rangeCond, rangeArgs := salesRange("sales.created_at", f)

	sum := func(extraCond string, extraArgs ...interface{}) (decimal.Decimal, error) {
		q := db.Model(&models.Sale{}).
			Select("COALESCE(SUM(total_amount), 0) AS total").
			Where(rangeCond, rangeArgs...)
		if extraCond != "" {
			q = q.Where(extraCond, extraArgs...)
		}
		var row struct{ Total decimal.Decimal }
		if err := q.Scan(&row).Error; err != nil {
			return decimal.Zero, err
		}
		return row.Total, nil
	}

	var err error
	if report.Totals.TotalAmount, err = sum(""); err != nil {
		return report, err
	}
	if report.Totals.TotalCash, err = sum("payment_method = ?", models.PaymentCash); err != nil {
		return report, err
	}
	if report.Totals.TotalTransfer, err = sum("payment_method = ?", models.PaymentTransfer); err != nil {
		return report, err
	}
	if report.Totals.TotalDebt, err = sum("payment_method = ?", models.PaymentDebt); err != nil {
		return report, err
	}

	// outstanding is a live balance, so it ignores the date filter
	globalBalance, err := ledgerBalance(db, nil)
	if err != nil {
		return report, err
	}
	report.Totals.TotalOutstanding = globalBalance.Remaining

	// profit = revenue in range - cost of goods sold in range
	var costRow struct{ Total decimal.Decimal }
	if err := db.Table("sale_items").
		Select("COALESCE(SUM(products.cost_price * sale_items.quantity), 0) AS total").
		Joins("JOIN products ON products.id = sale_items.product_id").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where(rangeCond, rangeArgs...).
		Scan(&costRow).Error; err != nil {
		return report, err
	}
	report.Totals.TotalProfit = report.Totals.TotalAmount.Sub(costRow.Total)

	productSales := func(order string) ([]ProductSalesRow, error) {
		var rows []ProductSalesRow
		err := db.Table("sale_items").
			Select(`
				products.id AS product_id,
				products.name,
				products.code,
				SUM(sale_items.quantity) AS total_qty,
				SUM(sale_items.line_total) AS total_amount
			`).
			Joins("JOIN products ON products.id = sale_items.product_id").
			Joins("JOIN sales ON sales.id = sale_items.sale_id").
			Where(rangeCond, rangeArgs...).
			Group("products.id, products.name, products.code").
			Order(order).
			Limit(10).
			Scan(&rows).Error
		return rows, err
	}

	if report.TopProducts, err = productSales("total_qty DESC"); err != nil {
		return report, err
	}
	if report.LowProducts, err = productSales("total_qty ASC"); err != nil {
		return report, err
	}

	if err := db.Where("is_active = true AND stock > 0 AND stock < ?", lowStockThreshold).
		Order("stock ASC, name ASC").
		Find(&report.LowStock).Error; err != nil {
		return report, err
	}
	if err := db.Where("is_active = true AND stock = 0").
		Order("name ASC").
		Find(&report.OutOfStock).Error; err != nil {
		return report, err
	}

	return report, nil
}

func (s *service) DebtorSummaries(ctx context.Context) ([]DebtorSummary, Balance, error) {
	db := s.db.WithContext(ctx)

	global, err := ledgerBalance(db, nil)
	if err != nil {
		return nil, Balance{}, err
	}

	// one query via aggregate subselects: joining sales and payments directly
	// would multiply rows
	var rows []DebtorSummary
	err = db.Table("debtors").
		Select(`
			debtors.id AS debtor_id,
			debtors.name,
			debtors.phone,
			COALESCE((SELECT SUM(s.total_amount) FROM sales s
				WHERE s.debtor_id = debtors.id AND s.payment_method = ?), 0) AS total_debt,
			COALESCE((SELECT SUM(p.amount) FROM debt_payments p
				WHERE p.debtor_id = debtors.id), 0) AS total_paid,
			(SELECT MAX(s.id) FROM sales s
				WHERE s.debtor_id = debtors.id AND s.payment_method = ?) AS last_invoice_id
		`, models.PaymentDebt, models.PaymentDebt).
		Scan(&rows).Error
	if err != nil {
		return nil, Balance{}, err
	}

	summaries := make([]DebtorSummary, 0, len(rows))
	for _, r := range rows {
		if !r.TotalDebt.IsPositive() {
			continue
		}
		r.Remaining = r.TotalDebt.Sub(r.TotalPaid)
		summaries = append(summaries, r)
	}

	// highest remaining first, name as tiebreak
	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].Remaining.Equal(summaries[j].Remaining) {
			return summaries[i].Remaining.GreaterThan(summaries[j].Remaining)
		}
		return summaries[i].Name < summaries[j].Name
	})

	return summaries, global, nil
}

// DebtorBalance derives one debtor's outstanding balance. It takes the
// handle explicitly so payment recording can reuse it inside a transaction
// holding the debtor row lock.
func DebtorBalance(db *gorm.DB, debtorID uint) (Balance, error) {
	return ledgerBalance(db, &debtorID)
}

func ledgerBalance(db *gorm.DB, debtorID *uint) (Balance, error) {
	var b Balance

	debtQ := db.Model(&models.Sale{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("payment_method = ?", models.PaymentDebt)
	paidQ := db.Model(&models.DebtPayment{}).
		Select("COALESCE(SUM(amount), 0) AS total")
	if debtorID != nil {
		debtQ = debtQ.Where("debtor_id = ?", *debtorID)
		paidQ = paidQ.Where("debtor_id = ?", *debtorID)
	}

	var row struct{ Total decimal.Decimal }
	if err := debtQ.Scan(&row).Error; err != nil {
		return b, err
	}
	b.TotalDebt = row.Total

	if err := paidQ.Scan(&row).Error; err != nil {
		return b, err
	}
	b.TotalPaid = row.Total

	b.Remaining = b.TotalDebt.Sub(b.TotalPaid)
	return b, nil
}

func salesRange(column string, f DashboardFilter) (string, []interface{}) {
	cond := "1 = 1"
	var args []interface{}
	if f.Start != nil {
		cond += " AND " + column + " >= ?"
		args = append(args, *f.Start)
	}
	if f.End != nil {
		cond += " AND " + column + " < ?"
		args = append(args, f.End.AddDate(0, 0, 1))
	}
	return cond, args
}
