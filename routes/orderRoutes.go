package routes

import (
	"github.com/bemenstore/bemen-api/controllers"
	"github.com/bemenstore/bemen-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	checkout := server.Group("/checkout", middlewares.RequireAuth())
	{
		checkout.POST("/cod", controllers.CheckoutCOD)
		checkout.POST("/gateway", controllers.InitiateGatewayCheckout)
		checkout.POST("/gateway/verify", controllers.ConfirmGatewayCheckout)
	}

	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.GET("", controllers.GetMyOrders)
		orders.GET("/:orderId", controllers.GetMyOrder)
		orders.DELETE("/:orderId", controllers.CancelOrder)
		orders.PATCH("/:orderId/address", controllers.UpdateOrderAddress)
		orders.POST("/:orderId/return", controllers.RequestReturn)
	}

	notifications := server.Group("/notifications", middlewares.RequireAuth())
	{
		notifications.GET("", controllers.GetNotifications)
		notifications.PATCH("/:notificationId", controllers.MarkNotificationRead)
	}
}
