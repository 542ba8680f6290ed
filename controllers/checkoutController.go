package controllers

import (
	"net/http"

	"github.com/bemenstore/bemen-api/initializers"
	"github.com/bemenstore/bemen-api/services"
	"github.com/gin-gonic/gin"
)

var gateway *services.GatewayClient

// gatewayClient builds the shared gateway client on first use, after the
// environment has been loaded.
func gatewayClient() *services.GatewayClient {
	if gateway == nil {
		gateway = services.NewGatewayClient()
	}
	return gateway
}

// CheckoutCOD places pay-on-delivery orders for the submitted lines.
func CheckoutCOD(ctx *gin.Context) {
	var checkoutData struct {
		Orders []services.CheckoutLine `json:"orders" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&checkoutData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No orders provided")
		return
	}

	result, err := services.CheckoutCOD(initializers.DB, currentUserID(ctx), checkoutData.Orders)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":     "Orders placed successfully (COD)",
		"totalAmount": result.TotalAmount,
		"orders":      result.Orders,
	})
}

// InitiateGatewayCheckout validates stock and registers the order with the
// payment gateway. No order rows are created until the payment is confirmed.
func InitiateGatewayCheckout(ctx *gin.Context) {
	var checkoutData struct {
		Orders []services.CheckoutLine `json:"orders" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&checkoutData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No orders provided")
		return
	}

	intent, err := services.InitiateGatewayCheckout(initializers.DB, gatewayClient(), currentUserID(ctx), checkoutData.Orders)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":        "Gateway order created",
		"gatewayOrderId": intent.GatewayOrderID,
		"amount":         intent.Amount,
		"currency":       intent.Currency,
		"ordersPayload":  checkoutData.Orders,
	})
}

// ConfirmGatewayCheckout verifies the payment signature and places the orders
// as paid.
func ConfirmGatewayCheckout(ctx *gin.Context) {
	var confirmData struct {
		GatewayOrderID   string                  `json:"gatewayOrderId" binding:"required"`
		GatewayPaymentID string                  `json:"gatewayPaymentId" binding:"required"`
		Signature        string                  `json:"signature" binding:"required"`
		Orders           []services.CheckoutLine `json:"orders" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&confirmData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result, err := services.ConfirmGatewayCheckout(initializers.DB, gatewayClient(), currentUserID(ctx),
		confirmData.GatewayOrderID, confirmData.GatewayPaymentID, confirmData.Signature, confirmData.Orders)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message":     "Payment successful, orders created",
		"totalAmount": result.TotalAmount,
		"orders":      result.Orders,
	})
}
