package routes

import (
	"github.com/bemenstore/bemen-api/controllers"
	"github.com/bemenstore/bemen-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.AddToCart)
		cart.DELETE("", controllers.ClearCart)
		cart.DELETE("/:productId", controllers.RemoveFromCart)
	}

	wishlist := server.Group("/wishlist", middlewares.RequireAuth())
	{
		wishlist.GET("", controllers.GetWishlist)
		wishlist.POST("", controllers.AddToWishlist)
		wishlist.DELETE("", controllers.ClearWishlist)
		wishlist.DELETE("/:productId", controllers.RemoveFromWishlist)
	}
}
