package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/models"
	"github.com/azzam1122112-dot/grocery-system/service"
)

// ListDebtors returns every debtor with open debt plus the global ledger totals.
func ListDebtors(c *gin.Context) {
	svc := service.NewService(config.DB)
	summaries, global, err := svc.DebtorSummaries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch debtors", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":              summaries,
		"total_outstanding": global.Remaining,
		"total_paid":        global.TotalPaid,
	})
}

// GetDebtor shows one debtor's statement: balance, debt sales and recent payments.
func GetDebtor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var debtor models.Debtor
	if err := config.DB.First(&debtor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "debtor not found"})
		return
	}

	balance, err := service.DebtorBalance(config.DB, debtor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to compute balance", "error": err.Error()})
		return
	}

	var debtSales []models.Sale
	if err := config.DB.Preload("CreatedBy").
		Where("debtor_id = ? AND payment_method = ?", debtor.ID, models.PaymentDebt).
		Order("created_at DESC").
		Find(&debtSales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch debt sales", "error": err.Error()})
		return
	}

	var payments []models.DebtPayment
	if err := config.DB.Preload("CreatedBy").
		Where("debtor_id = ?", debtor.ID).
		Order("paid_at DESC").
		Limit(20).
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch payments", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"debtor":     debtor,
			"balance":    balance,
			"debt_sales": debtSales,
			"payments":   payments,
		},
	})
}

type DebtPaymentInput struct {
	Amount        decimal.Decimal      `json:"amount" binding:"required"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required"` // cash / transfer
	Note          string               `json:"note"`
}

// RecordDebtPayment appends a payment against a debtor. The debtor row is
// locked while the balance is re-derived, so two concurrent payments cannot
// together exceed the outstanding amount.
func RecordDebtPayment(c *gin.Context) {
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

	var in DebtPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "amount and payment_method are required"})
		return
	}
	if in.PaymentMethod != models.PaymentCash && in.PaymentMethod != models.PaymentTransfer {
		c.JSON(http.StatusBadRequest, gin.H{"message": "payment method must be cash or transfer"})
		return
	}

	var payment *models.DebtPayment
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		payment, err = recordPaymentCore(tx, uint(id), in.Amount, in.PaymentMethod, in.Note, &uid)
		return err
	})

	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "debtor not found"})
		case errors.Is(err, models.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to record payment", "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "payment recorded", "data": payment})
}

// recordPaymentCore validates the amount against the live balance under the
// debtor row lock and appends the ledger entry.
func recordPaymentCore(tx *gorm.DB, debtorID uint, amount decimal.Decimal, method models.PaymentMethod, note string, actorID *uint) (*models.DebtPayment, error) {
	var debtor models.Debtor
	if err := lockForUpdate(tx).First(&debtor, debtorID).Error; err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", models.ErrInvalidAmount)
	}

	balance, err := service.DebtorBalance(tx, debtor.ID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(balance.Remaining) {
		return nil, fmt.Errorf("%w: amount %s exceeds outstanding balance %s",
			models.ErrInvalidAmount, amount.StringFixed(2), balance.Remaining.StringFixed(2))
	}

	payment := models.DebtPayment{
		DebtorID:      debtor.ID,
		Amount:        amount,
		PaymentMethod: method,
		Note:          note,
		PaidAt:        time.Now().UTC(),
		CreatedByID:   actorID,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
