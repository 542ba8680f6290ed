package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Bemen Store API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/verify-email/:activationToken" - Activate user account
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password/:resetToken" - Reset user password
- GET "/profile" - Get own profile
- PATCH "/profile" - Update own profile
- POST "/profile/change-password" - Change password

CATALOG
- GET "/product" - List products
- GET "/product/:id" - Get product by ID
- GET "/category" - List categories
- POST "/product" - Create product (admin)
- PUT "/product/:id" - Update product (admin)
- DELETE "/product/:id" - Delete product (admin)
- POST "/product-images" - Upload product images (admin)
- POST "/category" - Create category (admin)

CART & WISHLIST
- GET "/cart" - List cart items
- POST "/cart" - Add product to cart
- DELETE "/cart/:productId" - Remove product from cart
- DELETE "/cart" - Empty the cart
- GET "/wishlist", POST "/wishlist", DELETE "/wishlist/:productId", DELETE "/wishlist"

CHECKOUT & ORDERS
- POST "/checkout/cod" - Place cash-on-delivery orders
- POST "/checkout/gateway" - Start a prepaid checkout
- POST "/checkout/gateway/verify" - Confirm a prepaid checkout
- GET "/orders" - List own orders
- GET "/orders/:orderId" - Get own order
- DELETE "/orders/:orderId" - Cancel own order
- PATCH "/orders/:orderId/address" - Update shipping address
- POST "/orders/:orderId/return" - Request a return
- GET "/notifications" - List notifications
- PATCH "/notifications/:notificationId" - Mark notification as read

ADMIN
- GET "/admin/orders" - List all orders
- GET "/admin/orders/cancelled" - List cancelled/returned orders
- GET "/admin/orders/:orderId" - Get order by ID
- PATCH "/admin/orders/:orderId" - Update order status/tracking
- POST "/admin/orders/:orderId/return" - Approve or reject a return
- GET "/admin/products" - List all products
- GET "/admin/users" - List users
- GET "/admin/users/:userId" - Get user by ID
- POST "/admin/users/:userId/ban" - Ban or unban a user
- GET "/admin/dashboard" - Sales and inventory statistics`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
