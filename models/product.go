package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Code      string          `gorm:"uniqueIndex;size:50;not null" json:"code"` // barcode or manual code
	Name      string          `gorm:"size:200;not null" json:"name"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost_price"`
	SalePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sale_price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	IsActive  bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
