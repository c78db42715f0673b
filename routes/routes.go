package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/azzam1122112-dot/grocery-system/controllers"
	"github.com/azzam1122112-dot/grocery-system/middlewares"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/auth/login", controllers.Login)

		// ================= POS (any authenticated user) =================
		auth := api.Group("/", middlewares.RequireAuth())
		{
			auth.GET("/auth/profile", controllers.Profile)

			cart := auth.Group("/cart")
			{
				cart.GET("", controllers.GetCart)
				cart.POST("/items", controllers.AddCartItem)
				cart.DELETE("/items/:index", controllers.RemoveCartItem)
				cart.DELETE("", controllers.ClearCart)
			}

			auth.POST("/checkout", controllers.Checkout)

			// cashiers need the catalog to scan items
			auth.GET("/products", controllers.ListProducts)

			// ================= manager screens =================
			manager := auth.Group("/", middlewares.ManagerOnly())
			{
				products := manager.Group("/products")
				{
					products.POST("", controllers.CreateProduct)
					products.GET("/:id", controllers.GetProduct)
					products.PUT("/:id", controllers.UpdateProduct)
					products.DELETE("/:id", controllers.DeleteProduct)
					products.POST("/:id/stock", controllers.AdjustStock)
				}

				manager.GET("/stock-adjustments", controllers.ListStockAdjustments)

				sales := manager.Group("/sales")
				{
					sales.GET("", controllers.ListSales)
					sales.GET("/:id", controllers.GetSale)
				}

				debtors := manager.Group("/debtors")
				{
					debtors.GET("", controllers.ListDebtors)
					debtors.GET("/:id", controllers.GetDebtor)
					debtors.POST("/:id/payments", controllers.RecordDebtPayment)
				}

				manager.GET("/dashboard", controllers.Dashboard)

				employees := manager.Group("/employees")
				{
					employees.GET("", controllers.ListEmployees)
					employees.POST("", controllers.CreateEmployee)
					employees.PUT("/:id", controllers.UpdateEmployee)
					employees.DELETE("/:id", controllers.DeleteEmployee)
				}
			}
		}
	}
}
