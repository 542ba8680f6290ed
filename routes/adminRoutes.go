package routes

import (
	"github.com/bemenstore/bemen-api/controllers"
	"github.com/bemenstore/bemen-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/orders", controllers.GetOrders)
		admin.GET("/orders/cancelled", controllers.GetCancelledOrders)
		admin.GET("/orders/:orderId", controllers.GetOrder)
		admin.PATCH("/orders/:orderId", controllers.UpdateOrder)
		admin.POST("/orders/:orderId/return", controllers.ResolveReturn)

		admin.GET("/products", controllers.GetAdminProducts)

		admin.GET("/users", controllers.GetUsers)
		admin.GET("/users/:userId", controllers.GetUser)
		admin.POST("/users/:userId/ban", controllers.ToggleUserBan)

		admin.GET("/dashboard", controllers.GetDashboard)
	}
}
