package routes

import (
	"github.com/bemenstore/bemen-api/controllers"
	"github.com/bemenstore/bemen-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-email/:activationToken", controllers.ActivateAccount)
		auth.POST("/forgot-password", controllers.SendPasswordResetLink)
		auth.POST("/reset-password/:resetToken", controllers.ResetPassword)
	}

	profile := server.Group("/profile", middlewares.RequireAuth())
	{
		profile.GET("", controllers.GetProfile)
		profile.PATCH("", controllers.UpdateProfile)
		profile.POST("/change-password", controllers.ChangePassword)
	}
}
