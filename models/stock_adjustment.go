package models

import "time"

// StockAdjustment records every manual stock correction outside of sales.
type StockAdjustment struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `json:"product"`

	OldStock int    `json:"old_stock"`
	NewStock int    `json:"new_stock"`
	Delta    int    `json:"delta"` // signed: + for add, - for subtract
	Reason   string `gorm:"size:255" json:"reason"`

	CreatedByID *uint     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}
