package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/azzam1122112-dot/grocery-system/models"
)

// SeedAdmin creates a default manager account on an empty users table so the
// shop owner can log in after first boot. Username and password come from
// ADMIN_USERNAME / ADMIN_PASSWORD, defaulting to "admin".
func SeedAdmin() {
	var cnt int64
	DB.Model(&models.User{}).Count(&cnt)
	if cnt > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	admin := models.User{
		Username:     username,
		FullName:     "Shop Manager",
		IsManager:    true,
		IsActive:     true,
		PasswordHash: string(hashed),
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("warning: failed to seed admin account: %v", err)
		return
	}
	log.Printf("seeded manager account %q", username)
}
