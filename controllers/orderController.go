package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bemenstore/bemen-api/initializers"
	"github.com/bemenstore/bemen-api/models"
	"github.com/bemenstore/bemen-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// handleServiceError maps the service error taxonomy onto HTTP responses.
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		sendErrorResponse(ctx, http.StatusNotFound, "Record not found")
	case errors.Is(err, services.ErrInvalidTransition):
		sendErrorResponse(ctx, http.StatusConflict, "Order cannot be updated at this stage")
	case errors.Is(err, services.ErrValidation):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInsufficientStock):
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPaymentVerificationFailed):
		sendErrorResponse(ctx, http.StatusBadRequest, "Payment verification failed")
	default:
		log.Println("Service error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
	}
}

func orderIDParam(ctx *gin.Context) (uint, bool) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return 0, false
	}
	return uint(orderId), true
}

// GetMyOrders lists the authenticated user's orders, newest first.
func GetMyOrders(ctx *gin.Context) {
	var orders []models.Order
	result := initializers.DB.
		Preload("Product").
		Preload("Product.Images").
		Where("user_id = ?", currentUserID(ctx)).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetMyOrder returns one of the authenticated user's orders by id.
func GetMyOrder(ctx *gin.Context) {
	orderId, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	var order models.Order
	err := initializers.DB.
		Preload("Product").
		Preload("Product.Images").
		Where("id = ? AND user_id = ?", orderId, currentUserID(ctx)).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels one of the user's pre-shipment orders. A cancellation
// reason is required; stock is credited back and PAID payments are marked
// refunded.
func CancelOrder(ctx *gin.Context) {
	orderId, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	var cancelData struct {
		CancellationReason string `json:"cancellationReason"`
	}
	// A missing body is treated like a missing reason
	_ = ctx.ShouldBindJSON(&cancelData)

	order, err := services.CancelOrder(initializers.DB, currentUserID(ctx), orderId, cancelData.CancellationReason)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// RequestReturn submits a return request for a delivered order.
func RequestReturn(ctx *gin.Context) {
	orderId, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	var returnData struct {
		ReturnReason string `json:"returnReason"`
	}
	_ = ctx.ShouldBindJSON(&returnData)

	order, err := services.RequestReturn(initializers.DB, currentUserID(ctx), orderId, returnData.ReturnReason)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":     "Return request submitted successfully.",
		"orderStatus": order.OrderStatus,
	})
}

// UpdateOrderAddress changes the shipping address of a not-yet-shipped order.
func UpdateOrderAddress(ctx *gin.Context) {
	orderId, ok := orderIDParam(ctx)
	if !ok {
		return
	}

	var addressData struct {
		ShippingAddress string `json:"shippingAddress"`
	}
	_ = ctx.ShouldBindJSON(&addressData)

	order, err := services.UpdateShippingAddress(initializers.DB, currentUserID(ctx), orderId, addressData.ShippingAddress)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}
