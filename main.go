package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/azzam1122112-dot/grocery-system/config"
	"github.com/azzam1122112-dot/grocery-system/models"
	"github.com/azzam1122112-dot/grocery-system/routes"
	"github.com/azzam1122112-dot/grocery-system/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	config.ConnectDB()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Debtor{},
		&models.Sale{},
		&models.SaleItem{},
		&models.DebtPayment{},
		&models.StockAdjustment{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	config.SeedAdmin()

	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.Secret = []byte(s)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "grocery POS API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
