package routes

import (
	"backend/controllers"
	"backend/middleware"
	"backend/models"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(router *gin.Engine) {
	router.POST("/login", controllers.Login)
	router.GET("/receipt/:token", controllers.GetReceipt)

	// Staff and store accounts share the till surface; the role decides
	// how the ledger attributes each movement.
	staff := router.Group("/staff")
	staff.Use(middleware.AuthMiddleware(models.RoleStaff, models.RoleStore, models.RoleAdmin))
	{
		staff.GET("/products", controllers.GetAllProducts)

		staff.POST("/sales", controllers.CreateSale)
		staff.GET("/sales", controllers.ListSales)
		staff.GET("/sales/:id", controllers.GetSale)
		staff.POST("/sales/:id/payments", controllers.RegisterPayment)

		staff.POST("/exchanges", controllers.CreateExchange)
		staff.GET("/exchanges", controllers.ListExchanges)
		staff.GET("/exchanges/:id", controllers.GetExchange)
		staff.PUT("/exchanges/:id/settle", controllers.SettleExchange)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		admin.GET("/collections", controllers.GetCollections)
		admin.GET("/collections/daily", controllers.GetDailyCollections)
	}
}
