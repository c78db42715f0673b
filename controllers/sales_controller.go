package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/models"
	"github.com/azzam1122112-dot/grocery-system/utils"
)

// ListSales returns sale headers newest first, filterable by date range,
// payment method and invoice id.
func ListSales(c *gin.Context) {
	q := config.DB.Preload("Debtor").Preload("CreatedBy").Order("created_at DESC")

	q = applyDateRange(q, "created_at", getDateQ(c, "start"), getDateQ(c, "end"))

	if method := c.Query("payment_method"); method != "" {
		q = q.Where("payment_method = ?", method)
	}
	if invoiceID := c.Query("invoice_id"); invoiceID != "" {
		q = q.Where("id = ?", invoiceID)
	}

	var sales []models.Sale
	if err := q.Find(&sales).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to fetch sales", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sales})
}

func GetSale(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var sale models.Sale
	if err := config.DB.
		Preload("Items.Product").
		Preload("Debtor").
		Preload("CreatedBy").
		First(&sale, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "sale not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sale})
}
