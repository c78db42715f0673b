package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentDebt     PaymentMethod = "debt"
)

// Sale is immutable once created: there is no update path anywhere.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	PaymentMethod PaymentMethod   `gorm:"size:20;index;not null" json:"payment_method"`
	DebtorID      *uint           `gorm:"index" json:"debtor_id"` // set iff payment_method = debt
	Debtor        *Debtor         `json:"debtor,omitempty"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedByID   *uint           `json:"created_by_id"`
	CreatedBy     *User           `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`

	Items []SaleItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"index;not null" json:"sale_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Product   Product         `gorm:"constraint:OnDelete:RESTRICT" json:"product"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"` // sale price at sale time
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_total"`
}
