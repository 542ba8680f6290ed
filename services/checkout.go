package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/bemenstore/bemen-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutLine is one (product, quantity, destination) tuple submitted at
// checkout, prior to becoming an Order.
type CheckoutLine struct {
	ProductID       uint   `json:"productId" binding:"required"`
	Quantity        int    `json:"quantity"`
	ShippingAddress string `json:"shippingAddress"`
	Phone           string `json:"phone"`
}

type CheckoutResult struct {
	Orders      []models.Order  `json:"orders"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// GatewayIntent is the phase-1 result of a gateway checkout: the gateway's
// order id plus the amount the client hands to the payment widget. No order
// rows exist yet at this point.
type GatewayIntent struct {
	GatewayOrderID string          `json:"gatewayOrderId"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
}

const gatewayCurrency = "INR"

// validateLines resolves every product and checks current stock without
// reserving anything. Returns the product per line, quantities normalized
// (a missing quantity means one unit), and the grand total.
func validateLines(db *gorm.DB, lines []CheckoutLine) ([]models.Product, []int, decimal.Decimal, error) {
	if len(lines) == 0 {
		return nil, nil, decimal.Zero, validationErr("no order lines provided")
	}

	products := make([]models.Product, len(lines))
	quantities := make([]int, len(lines))
	total := decimal.Zero

	for i, line := range lines {
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, nil, decimal.Zero, validationErr("quantity must be positive")
		}

		var product models.Product
		err := db.First(&product, line.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, decimal.Zero, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
		}
		if err != nil {
			return nil, nil, decimal.Zero, err
		}
		if product.Stock < qty {
			return nil, nil, decimal.Zero, insufficientStockErr(product.Name)
		}

		products[i] = product
		quantities[i] = qty
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return products, quantities, total, nil
}

// placeOrders is the atomic block both checkout variants share: create one
// order per line with the price snapshotted from the product, reserve stock
// for every line, and drop the checked-out products from the user's cart.
// Any failure rolls the whole block back.
func placeOrders(tx *gorm.DB, userID uint, lines []CheckoutLine, products []models.Product, quantities []int,
	method models.PaymentMethod, payStatus models.PaymentStatus, gatewayOrderID, gatewayPaymentID string) ([]models.Order, error) {

	orders := make([]models.Order, 0, len(lines))
	productIDs := make([]uint, 0, len(lines))

	for i, line := range lines {
		product := products[i]
		qty := quantities[i]

		order := models.Order{
			UserID:           userID,
			ProductID:        product.ID,
			Quantity:         qty,
			Price:            product.Price,
			TotalAmount:      product.Price.Mul(decimal.NewFromInt(int64(qty))),
			PaymentMethod:    method,
			PaymentStatus:    payStatus,
			GatewayOrderID:   gatewayOrderID,
			GatewayPaymentID: gatewayPaymentID,
			OrderStatus:      models.OrderProcessing,
			ShippingAddress:  line.ShippingAddress,
			Phone:            line.Phone,
		}
		if err := tx.Create(&order).Error; err != nil {
			return nil, err
		}
		if err := ReserveStock(tx, product.ID, qty); err != nil {
			return nil, err
		}

		orders = append(orders, order)
		productIDs = append(productIDs, product.ID)
	}

	if err := tx.Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CheckoutCOD places pay-on-delivery orders for the given lines. Either every
// line becomes an order and has its stock reserved, or nothing is written.
func CheckoutCOD(db *gorm.DB, userID uint, lines []CheckoutLine) (*CheckoutResult, error) {
	products, quantities, total, err := validateLines(db, lines)
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		orders, err = placeOrders(tx, userID, lines, products, quantities,
			models.MethodCOD, models.PaymentPending, "", "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Orders: orders, TotalAmount: total}, nil
}

// InitiateGatewayCheckout is phase 1 of a prepaid checkout: validate stock,
// register the order with the gateway, and hand the intent back. Stock is not
// reserved until the payment is confirmed.
func InitiateGatewayCheckout(db *gorm.DB, gateway *GatewayClient, userID uint, lines []CheckoutLine) (*GatewayIntent, error) {
	_, _, total, err := validateLines(db, lines)
	if err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("rcpt_%s", uuid.NewString())
	gatewayOrderID, err := gateway.CreateOrder(total, gatewayCurrency, receipt)
	if err != nil {
		return nil, err
	}

	return &GatewayIntent{
		GatewayOrderID: gatewayOrderID,
		Amount:         total,
		Currency:       gatewayCurrency,
	}, nil
}

// ConfirmGatewayCheckout is phase 2: verify the payment signature, re-check
// stock (time has passed since phase 1), then place the orders as PAID with
// the gateway references attached. A signature mismatch writes nothing.
func ConfirmGatewayCheckout(db *gorm.DB, gateway *GatewayClient, userID uint,
	gatewayOrderID, gatewayPaymentID, signature string, lines []CheckoutLine) (*CheckoutResult, error) {

	if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return nil, validationErr("payment reference and signature are required")
	}
	if !gateway.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		return nil, ErrPaymentVerificationFailed
	}

	products, quantities, total, err := validateLines(db, lines)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			// Payment has been captured but the order cannot be placed.
			// Logged for manual reconciliation against the gateway.
			log.Printf("Gateway order %s paid but stock re-validation failed: %v", gatewayOrderID, err)
		}
		return nil, err
	}

	var orders []models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		orders, err = placeOrders(tx, userID, lines, products, quantities,
			models.MethodGateway, models.PaymentPaid, gatewayOrderID, gatewayPaymentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Orders: orders, TotalAmount: total}, nil
}
