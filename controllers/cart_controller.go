package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azzam1122112-dot/grocery-system/cart"
	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/models"
)

func GetCart(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	entries := Carts.Entries(uid)
	c.JSON(http.StatusOK, gin.H{
		"data":  entries,
		"total": cart.Total(entries),
	})
}

type AddCartItemInput struct {
	Code     string `json:"code" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// AddCartItem looks up an active product by code and reserves quantity in the
// user's cart. The stock check here is advisory; checkout re-validates under
// a row lock.
func AddCartItem(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	var in AddCartItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "code and a positive quantity are required"})
		return
	}

	var product models.Product
	if err := config.DB.Where("code = ? AND is_active = true", strings.TrimSpace(in.Code)).
		First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found or inactive"})
		return
	}

	if err := Carts.Add(uid, product, in.Quantity); err != nil {
		var stockErr *models.InsufficientStockError
		if errors.As(err, &stockErr) {
			c.JSON(http.StatusConflict, gin.H{"message": stockErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add item"})
		return
	}

	entries := Carts.Entries(uid)
	c.JSON(http.StatusOK, gin.H{
		"message": "item added to cart",
		"data":    entries,
		"total":   cart.Total(entries),
	})
}

func RemoveCartItem(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid index"})
		return
	}

	if err := Carts.Remove(uid, index); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	entries := Carts.Entries(uid)
	c.JSON(http.StatusOK, gin.H{
		"message": "item removed from cart",
		"data":    entries,
		"total":   cart.Total(entries),
	})
}

func ClearCart(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	Carts.Clear(uid)
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
