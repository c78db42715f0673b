package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debtor carries no stored balance: the outstanding amount is always derived
// as sum of debt-method sale totals minus sum of payments.
type Debtor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;index;not null" json:"name"`
	Phone     *string   `gorm:"size:20" json:"phone"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DebtPayment is an append-only ledger entry; rows are never updated or
// deleted individually (only cascade-removed with their debtor).
type DebtPayment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	DebtorID      uint            `gorm:"index;not null" json:"debtor_id"`
	Debtor        Debtor          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null" json:"payment_method"` // cash / transfer
	Note          string          `gorm:"size:255" json:"note,omitempty"`
	PaidAt        time.Time       `gorm:"index;not null" json:"paid_at"`
	CreatedByID   *uint           `gorm:"index" json:"created_by_id"`
	CreatedBy     *User           `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
