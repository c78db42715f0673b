package controllers

import (
	"testing"

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
		&models.StockAdjustment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, code string, cost, sale string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		Code:      code,
		Name:      "product " + code,
		CostPrice: decimal.RequireFromString(cost),
		SalePrice: decimal.RequireFromString(sale),
		Stock:     stock,
		IsActive:  true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product %s: %v", code, err)
	}
	return p
}

func seedUser(t *testing.T, db *gorm.DB, username string, manager bool) models.User {
	t.Helper()
	u := models.User{Username: username, IsManager: manager, IsActive: true}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}
