package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/models"
	"github.com/azzam1122112-dot/grocery-system/utils"
)

type EmployeeInput struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"` // manager | cashier
	IsActive *bool  `json:"is_active"`
	// Password is stored hashed for when real authentication lands; the
	// current login flow does not check it.
	Password string `json:"password"`
}

func ListEmployees(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("username ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch employees", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func CreateEmployee(c *gin.Context) {
	var in EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	if in.Role != "manager" && in.Role != "cashier" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "role must be manager or cashier"})
		return
	}

	user := models.User{
		Username:  in.Username,
		FullName:  in.FullName,
		IsManager: in.Role == "manager",
		IsActive:  true,
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		user.PasswordHash = string(hashed)
	}

	if err := config.DB.Create(&user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create employee", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "employee created", "data": user})
}

func UpdateEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
		return
	}

	var in EmployeeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload", "error": err.Error()})
		return
	}
	if in.Role != "manager" && in.Role != "cashier" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "role must be manager or cashier"})
		return
	}

	user.Username = in.Username
	user.FullName = in.FullName
	user.IsManager = in.Role == "manager"
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		user.PasswordHash = string(hashed)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update employee", "error": err.Error()})
		return
	}

	utils.Success(c, "employee updated", user)
}

func DeleteEmployee(c *gin.Context) {
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

	if uint(id) == uid {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot delete your own account"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "employee not found"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete employee", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}
