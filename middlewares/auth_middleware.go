package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azzam1122112-dot/grocery-system/utils"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		// jwt numbers decode as float64
		uid, ok := claims["user_id"].(float64)
		if !ok || uid <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		isManager, _ := claims["is_manager"].(bool)

		c.Set("user_id", uint(uid))
		c.Set("username", claims["username"])
		c.Set("is_manager", isManager)
		c.Next()
	}
}

// ManagerOnly gates the dashboard, inventory, sales, debt and employee
// screens behind the single manager capability flag.
func ManagerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		isManager, _ := c.Get("is_manager")
		if ok, _ := isManager.(bool); !ok {
			c.JSON(http.StatusForbidden, gin.H{"message": "manager access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
