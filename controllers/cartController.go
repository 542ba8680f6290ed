package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bemenstore/bemen-api/initializers"
	"github.com/bemenstore/bemen-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddToCart creates a cart line for (user, product) or, when the product is
// already in the cart, increments the existing quantity.
func AddToCart(ctx *gin.Context) {
	var cartData struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&cartData); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}
	if cartData.Quantity <= 0 {
		cartData.Quantity = 1
	}

	userID := currentUserID(ctx)

	var product models.Product
	if err := initializers.DB.First(&product, cartData.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
		}
		return
	}

	var existingItem models.CartItem
	err := initializers.DB.
		Where("user_id = ? AND product_id = ?", userID, cartData.ProductID).
		First(&existingItem).Error

	if err == nil {
		existingItem.Quantity += cartData.Quantity
		if err := initializers.DB.Save(&existingItem).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"item":    existingItem,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart item")
		return
	}

	cartItem := models.CartItem{
		UserID:    userID,
		ProductID: cartData.ProductID,
		Quantity:  cartData.Quantity,
	}
	if err := initializers.DB.Create(&cartItem).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to create cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": product.Name + " added to cart",
		"item":    cartItem,
	})
}

// GetCart lists the user's cart, most recently added first.
func GetCart(ctx *gin.Context) {
	var items []models.CartItem
	result := initializers.DB.
		Where("user_id = ?", currentUserID(ctx)).
		Preload("Product").
		Preload("Product.Images").
		Order("created_at desc").
		Find(&items)

	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": items})
}

// RemoveFromCart removes one product from the cart.
func RemoveFromCart(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result := initializers.DB.
		Where("user_id = ? AND product_id = ?", currentUserID(ctx), productId).
		Delete(&models.CartItem{})
	if result.Error != nil {
		log.Println("Delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found in cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product removed from cart"})
}

// ClearCart empties the user's cart.
func ClearCart(ctx *gin.Context) {
	if err := initializers.DB.
		Where("user_id = ?", currentUserID(ctx)).
		Delete(&models.CartItem{}).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "All cart items removed"})
}
