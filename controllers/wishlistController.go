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

// AddToWishlist saves a product to the user's wishlist. Adding the same
// product twice keeps a single entry.
func AddToWishlist(ctx *gin.Context) {
	var wishlistData struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&wishlistData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	userID := currentUserID(ctx)

	var product models.Product
	if err := initializers.DB.First(&product, wishlistData.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch product")
		}
		return
	}

	var existing models.WishlistItem
	err := initializers.DB.
		Where("user_id = ? AND product_id = ?", userID, wishlistData.ProductID).
		First(&existing).Error
	if err == nil {
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product already in wishlist"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch wishlist item")
		return
	}

	item := models.WishlistItem{UserID: userID, ProductID: wishlistData.ProductID}
	if err := initializers.DB.Create(&item).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add product to wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Product added to wishlist"})
}

// GetWishlist lists the user's wishlist, most recently added first.
func GetWishlist(ctx *gin.Context) {
	var items []models.WishlistItem
	result := initializers.DB.
		Where("user_id = ?", currentUserID(ctx)).
		Preload("Product").
		Preload("Product.Images").
		Order("created_at desc").
		Find(&items)

	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"wishlist": items})
}

// RemoveFromWishlist removes one product from the wishlist.
func RemoveFromWishlist(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	result := initializers.DB.
		Where("user_id = ? AND product_id = ?", currentUserID(ctx), productId).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		log.Println("Delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove wishlist item")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found in wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product removed from wishlist"})
}

// ClearWishlist empties the user's wishlist.
func ClearWishlist(ctx *gin.Context) {
	if err := initializers.DB.
		Where("user_id = ?", currentUserID(ctx)).
		Delete(&models.WishlistItem{}).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear wishlist")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "All wishlist items removed"})
}
