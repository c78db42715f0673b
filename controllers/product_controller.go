package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/models"
)

type ProductInput struct {
	Code      string          `json:"code" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Stock     int             `json:"stock"`
	IsActive  *bool           `json:"is_active"`
}

func CreateProduct(c *gin.Context) {
	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	if in.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "stock cannot be negative"})
		return
	}

	product := models.Product{
		Code:      in.Code,
		Name:      in.Name,
		CostPrice: in.CostPrice,
		SalePrice: in.SalePrice,
		Stock:     in.Stock,
		IsActive:  true,
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := config.DB.Create(&product).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "product code already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create product", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "product created", "data": product})
}

// ListProducts returns active products ordered by name, optionally filtered
// by a name/code search term.
func ListProducts(c *gin.Context) {
	q := config.DB.Where("is_active = true")

	if term := c.Query("q"); term != "" {
		like := "%" + term + "%"
		q = q.Where("name LIKE ? OR code LIKE ?", like, like)
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch products", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

func GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

func UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}

	var in ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	if in.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "stock cannot be negative"})
		return
	}

	product.Code = in.Code
	product.Name = in.Name
	product.CostPrice = in.CostPrice
	product.SalePrice = in.SalePrice
	product.Stock = in.Stock
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := config.DB.Save(&product).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "product code already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update product", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product updated", "data": product})
}

// DeleteProduct hard-deletes a product unless sale items still reference it.
func DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}

	var refs int64
	if err := config.DB.Model(&models.SaleItem{}).Where("product_id = ?", product.ID).Count(&refs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to check references", "error": err.Error()})
		return
	}
	if refs > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": models.ErrProductInUse.Error()})
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete product", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
