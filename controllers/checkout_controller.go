package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/azzam1122112-dot/grocery-system/cart"
	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/models"
)

type CheckoutInput struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"`
	DebtorName    string               `json:"debtor_name"`
}

// Checkout converts the user's cart into a durable Sale. Everything runs in
// one transaction: stock is re-validated per product under an exclusive row
// lock, so two concurrent checkouts cannot both win the last unit.
func Checkout(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var in CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "payment_method is required"})
		return
	}

	switch in.PaymentMethod {
	case models.PaymentCash, models.PaymentTransfer, models.PaymentDebt:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payment method"})
		return
	}

	in.DebtorName = strings.TrimSpace(in.DebtorName)
	if in.PaymentMethod == models.PaymentDebt && in.DebtorName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "debtor name is required for debt sales"})
		return
	}

	entries := Carts.Entries(uid)
	if len(entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
		return
	}

	var sale *models.Sale
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		sale, err = commitSale(tx, uid, entries, in.PaymentMethod, in.DebtorName)
		return err
	})

	if err != nil {
		var stockErr *models.InsufficientStockError
		if errors.As(err, &stockErr) {
			// cart left intact so the cashier can fix the offending line
			c.JSON(http.StatusConflict, gin.H{"message": stockErr.Error()})
			return
		}
		log.Printf("checkout failed for user %d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "unexpected error while saving the sale, please try again"})
		return
	}

	Carts.Clear(uid)

	if err := config.DB.Preload("Items.Product").Preload("Debtor").First(sale, sale.ID).Error; err != nil {
		log.Printf("failed to reload sale %d: %v", sale.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "sale recorded",
		"data":    sale,
	})
}

// commitSale is the checkout unit. It must run inside a transaction: any
// error aborts the whole attempt and no partial writes survive.
func commitSale(tx *gorm.DB, userID uint, entries []cart.Entry, method models.PaymentMethod, debtorName string) (*models.Sale, error) {
	var debtorID *uint
	if method == models.PaymentDebt {
		debtor, err := getOrCreateDebtor(tx, debtorName)
		if err != nil {
			return nil, err
		}
		debtorID = &debtor.ID
	}

	sale := models.Sale{
		PaymentMethod: method,
		DebtorID:      debtorID,
		TotalAmount:   cart.Total(entries),
		CreatedByID:   &userID,
	}
	if err := tx.Create(&sale).Error; err != nil {
		return nil, err
	}

	for _, e := range entries {
		// lock the stock row to serialize against concurrent checkouts
		var product models.Product
		if err := lockForUpdate(tx).First(&product, e.ProductID).Error; err != nil {
			return nil, err
		}
		if e.Quantity > product.Stock {
			return nil, &models.InsufficientStockError{
				ProductID: product.ID,
				Code:      product.Code,
				Name:      product.Name,
				Requested: e.Quantity,
				Available: product.Stock,
			}
		}

		item := models.SaleItem{
			SaleID:    sale.ID,
			ProductID: e.ProductID,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
			LineTotal: e.LineTotal,
		}
		if err := tx.Create(&item).Error; err != nil {
			return nil, err
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			UpdateColumn("stock", gorm.Expr("stock - ?", e.Quantity)).Error; err != nil {
			return nil, err
		}
	}

	return &sale, nil
}

func getOrCreateDebtor(tx *gorm.DB, name string) (*models.Debtor, error) {
	var debtor models.Debtor
	err := tx.Where("name = ?", name).First(&debtor).Error
	if err == nil {
		return &debtor, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	debtor = models.Debtor{Name: name}
	if err := tx.Create(&debtor).Error; err != nil {
		return nil, err
	}
	return &debtor, nil
}
