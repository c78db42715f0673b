package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/models"
)

type AdjustStockInput struct {
	Action   string `json:"action" binding:"required"` // add | subtract
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Reason   string `json:"reason"`
}

// AdjustStock applies a manual stock correction. It takes the same row lock
// as checkout, so a manual subtraction can never race a concurrent sale into
// negative stock.
func AdjustStock(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var in AdjustStockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "action and a positive quantity are required"})
		return
	}

	delta := in.Quantity
	switch in.Action {
	case "add":
	case "subtract":
		delta = -delta
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "action must be add or subtract"})
		return
	}

	var adjustment *models.StockAdjustment
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		adjustment, err = adjustStockCore(tx, uint(id), delta, in.Reason, &uid)
		return err
	})

	if err != nil {
		var stockErr *models.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, gin.H{"message": stockErr.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to adjust stock", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "stock adjusted", "data": adjustment})
}

// adjustStockCore mutates stock under an exclusive row lock and records the
// correction in the adjustment trail.
func adjustStockCore(tx *gorm.DB, productID uint, delta int, reason string, actorID *uint) (*models.StockAdjustment, error) {
	var product models.Product
	if err := lockForUpdate(tx).First(&product, productID).Error; err != nil {
		return nil, err
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, &models.InsufficientStockError{
			ProductID: product.ID,
			Code:      product.Code,
			Name:      product.Name,
			Requested: -delta,
			Available: product.Stock,
		}
	}

	if err := tx.Model(&models.Product{}).
		Where("id = ?", product.ID).
		UpdateColumn("stock", newStock).Error; err != nil {
		return nil, err
	}

	adjustment := models.StockAdjustment{
		ProductID:   product.ID,
		OldStock:    product.Stock,
		NewStock:    newStock,
		Delta:       delta,
		Reason:      reason,
		CreatedByID: actorID,
	}
	if err := tx.Create(&adjustment).Error; err != nil {
		return nil, err
	}
	return &adjustment, nil
}

// ListStockAdjustments shows the manual correction history, newest first.
func ListStockAdjustments(c *gin.Context) {
	q := config.DB.Preload("Product").Order("id DESC").Limit(200)

	if pid := c.Query("product_id"); pid != "" {
		q = q.Where("product_id = ?", pid)
	}

	var rows []models.StockAdjustment
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch adjustments", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
