package routes

import (
	"net/http"
	"time"

	"github.com/boredom1234/yummenu-backend/controllers"
	"github.com/boredom1234/yummenu-backend/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every /api/my route sits behind both gates: JWTCheck establishes trust,
	// JWTParse resolves the caller's identity.
	user := r.Group("/api/my/user")
	user.Use(middlewares.JWTCheck(), middlewares.JWTParse())
	{
		user.GET("", controllers.GetCurrentUser)
		user.POST("", controllers.CreateCurrentUser)
		user.PUT("", controllers.UpdateCurrentUser)
	}

	restaurant := r.Group("/api/my/restaurant")
	restaurant.Use(middlewares.JWTCheck(), middlewares.JWTParse())
	{
		restaurant.GET("", controllers.GetMyRestaurant)
		restaurant.POST("", controllers.CreateMyRestaurant)
		restaurant.PUT("", controllers.UpdateMyRestaurant)
		restaurant.GET("/orders", controllers.GetMyRestaurantOrders)
		restaurant.PATCH("/order/:orderId/status", controllers.UpdateOrderStatus)
	}

	return r
}
