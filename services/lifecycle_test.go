package services

import (
	"fmt"
	"testing"

	"github.com/bemenstore/bemen-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestOrder(t *testing.T, db *gorm.DB, user models.User, product models.Product, qty int,
	method models.PaymentMethod, payStatus models.PaymentStatus, status models.OrderStatus) models.Order {
	t.Helper()

	order := models.Order{
		UserID:        user.ID,
		ProductID:     product.ID,
		Quantity:      qty,
		Price:         product.Price,
		TotalAmount:   product.Price.Mul(decimal.NewFromInt(int64(qty))),
		PaymentMethod: method,
		PaymentStatus: payStatus,
		OrderStatus:   status,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestCancelOrder(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Messenger Bag", "100.00", 10)
	require.NoError(t, ReserveStock(db, product.ID, 2))
	order := createTestOrder(t, db, user, product, 2, models.MethodGateway, models.PaymentPaid, models.OrderProcessing)

	cancelled, err := CancelOrder(db, user.ID, order.ID, "changed mind")
	require.NoError(t, err)

	assert.Equal(t, models.OrderCancelled, cancelled.OrderStatus)
	assert.Equal(t, models.PaymentRefunded, cancelled.PaymentStatus)
	assert.Equal(t, "changed mind", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)

	// Reserved stock credited back.
	assert.Equal(t, 10, productStock(t, db, product.ID))

	// Exactly one notification for the status change.
	assert.EqualValues(t, 1, notificationCount(t, db, user.ID))
	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&notification).Error)
	assert.Equal(t, fmt.Sprintf("Your order #%d was CANCELLED.", order.ID), notification.Message)
}

func TestCancelOrderCODKeepsPendingPayment(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Wallet", "45.00", 5)
	require.NoError(t, ReserveStock(db, product.ID, 1))
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	cancelled, err := CancelOrder(db, user.ID, order.ID, "ordered by mistake")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, cancelled.PaymentStatus)
	assert.Equal(t, 5, productStock(t, db, product.ID))
}

func TestCancelOrderRequiresReason(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Wallet", "45.00", 5)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	_, err := CancelOrder(db, user.ID, order.ID, "")
	require.ErrorIs(t, err, ErrValidation)

	var unchanged models.Order
	require.NoError(t, db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.OrderProcessing, unchanged.OrderStatus)
}

func TestCancelOrderPastWindow(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Wallet", "45.00", 5)

	for _, status := range []models.OrderStatus{
		models.OrderShipped, models.OrderOutForDelivery, models.OrderDelivered,
	} {
		order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, status)
		_, err := CancelOrder(db, user.ID, order.ID, "too late")
		require.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

// Repeated cancels must fail, not credit stock twice.
func TestCancelOrderTwice(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Wallet", "45.00", 5)
	require.NoError(t, ReserveStock(db, product.ID, 3))
	order := createTestOrder(t, db, user, product, 3, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	_, err := CancelOrder(db, user.ID, order.ID, "first")
	require.NoError(t, err)
	assert.Equal(t, 5, productStock(t, db, product.ID))

	_, err = CancelOrder(db, user.ID, order.ID, "second")
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 5, productStock(t, db, product.ID))
}

func TestCancelOrderWrongUser(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	product := createTestProduct(t, db, "Wallet", "45.00", 5)
	order := createTestOrder(t, db, owner, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	_, err := CancelOrder(db, other.ID, order.ID, "not mine")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRequestReturn(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Loafers", "80.00", 5)
	order := createTestOrder(t, db, user, product, 1, models.MethodGateway, models.PaymentPaid, models.OrderDelivered)

	updated, err := RequestReturn(db, user.ID, order.ID, "defective")
	require.NoError(t, err)
	assert.Equal(t, models.OrderReturnPending, updated.OrderStatus)
	assert.Equal(t, "defective", updated.ReturnReason)
	assert.EqualValues(t, 1, notificationCount(t, db, user.ID))
}

func TestRequestReturnRequiresDelivered(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Loafers", "80.00", 5)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	_, err := RequestReturn(db, user.ID, order.ID, "defective")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRequestReturnRequiresReason(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Loafers", "80.00", 5)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderDelivered)

	_, err := RequestReturn(db, user.ID, order.ID, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestResolveReturnApprove(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Derby Shoes", "120.00", 3)
	order := createTestOrder(t, db, user, product, 2, models.MethodGateway, models.PaymentPaid, models.OrderReturnPending)

	resolved, err := ResolveReturn(db, order.ID, ReturnActionApprove)
	require.NoError(t, err)

	assert.Equal(t, models.OrderReturned, resolved.OrderStatus)
	assert.Equal(t, models.PaymentRefunded, resolved.PaymentStatus)
	require.NotNil(t, resolved.ReturnedAt)
	assert.Equal(t, 5, productStock(t, db, product.ID))
	assert.EqualValues(t, 1, notificationCount(t, db, user.ID))
}

func TestResolveReturnApproveCODKeepsPayment(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Derby Shoes", "120.00", 3)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPaid, models.OrderReturnPending)

	resolved, err := ResolveReturn(db, order.ID, ReturnActionApprove)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, resolved.PaymentStatus)
}

func TestResolveReturnReject(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Derby Shoes", "120.00", 3)
	order := createTestOrder(t, db, user, product, 2, models.MethodGateway, models.PaymentPaid, models.OrderReturnPending)
	require.NoError(t, db.Model(&order).Update("return_reason", "scuffed sole").Error)

	resolved, err := ResolveReturn(db, order.ID, ReturnActionReject)
	require.NoError(t, err)

	assert.Equal(t, models.OrderDelivered, resolved.OrderStatus)
	assert.Equal(t, models.PaymentPaid, resolved.PaymentStatus)
	assert.Equal(t, "scuffed sole", resolved.ReturnReason)
	assert.Equal(t, 3, productStock(t, db, product.ID))
	assert.EqualValues(t, 1, notificationCount(t, db, user.ID))
}

func TestResolveReturnInvalidAction(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Derby Shoes", "120.00", 3)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderReturnPending)

	_, err := ResolveReturn(db, order.ID, "maybe")
	require.ErrorIs(t, err, ErrValidation)
}

// Approving an order that is not pending return must not mutate anything.
func TestResolveReturnWrongState(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Derby Shoes", "120.00", 3)
	order := createTestOrder(t, db, user, product, 2, models.MethodGateway, models.PaymentPaid, models.OrderDelivered)

	_, err := ResolveReturn(db, order.ID, ReturnActionApprove)
	require.ErrorIs(t, err, ErrInvalidTransition)

	var unchanged models.Order
	require.NoError(t, db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.OrderDelivered, unchanged.OrderStatus)
	assert.Equal(t, models.PaymentPaid, unchanged.PaymentStatus)
	assert.Equal(t, 3, productStock(t, db, product.ID))
	assert.EqualValues(t, 0, notificationCount(t, db, user.ID))
}

func TestAdminUpdateOrderShipping(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Blazer", "200.00", 4)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	shipped := models.OrderShipped
	trackingID := "TRK-1042"
	updated, err := AdminUpdateOrder(db, order.ID, AdminOrderUpdate{Status: &shipped, TrackingID: &trackingID})
	require.NoError(t, err)

	assert.Equal(t, models.OrderShipped, updated.OrderStatus)
	assert.Equal(t, "TRK-1042", updated.TrackingID)
	assert.EqualValues(t, 1, notificationCount(t, db, user.ID))
}

// Setting the current status again is not a transition and must not notify.
func TestAdminUpdateOrderSameStatusNoNotification(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Blazer", "200.00", 4)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	processing := models.OrderProcessing
	_, err := AdminUpdateOrder(db, order.ID, AdminOrderUpdate{Status: &processing})
	require.NoError(t, err)
	assert.EqualValues(t, 0, notificationCount(t, db, user.ID))
}

func TestAdminUpdateOrderIllegalTransition(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Blazer", "200.00", 4)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	delivered := models.OrderDelivered
	_, err := AdminUpdateOrder(db, order.ID, AdminOrderUpdate{Status: &delivered})
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.EqualValues(t, 0, notificationCount(t, db, user.ID))
}

func TestAdminUpdateOrderUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Blazer", "200.00", 4)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	bogus := models.OrderStatus("MISPLACED")
	_, err := AdminUpdateOrder(db, order.ID, AdminOrderUpdate{Status: &bogus})
	require.ErrorIs(t, err, ErrValidation)
}

// Admin cancel of a gateway order forces the refund regardless of the prior
// payment status.
func TestAdminCancelGatewayForcesRefund(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Blazer", "200.00", 4)
	require.NoError(t, ReserveStock(db, product.ID, 1))
	order := createTestOrder(t, db, user, product, 1, models.MethodGateway, models.PaymentPending, models.OrderProcessing)

	cancelled := models.OrderCancelled
	updated, err := AdminUpdateOrder(db, order.ID, AdminOrderUpdate{
		Status:             &cancelled,
		CancellationReason: "stock damaged in warehouse",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderCancelled, updated.OrderStatus)
	assert.Equal(t, models.PaymentRefunded, updated.PaymentStatus)
	assert.Equal(t, "stock damaged in warehouse", updated.CancellationReason)
	require.NotNil(t, updated.CancelledAt)
	assert.Equal(t, 4, productStock(t, db, product.ID))
	assert.EqualValues(t, 1, notificationCount(t, db, user.ID))
}

func TestUpdateShippingAddress(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Blazer", "200.00", 4)
	order := createTestOrder(t, db, user, product, 1, models.MethodCOD, models.PaymentPending, models.OrderProcessing)

	updated, err := UpdateShippingAddress(db, user.ID, order.ID, "1 New Street, Pune")
	require.NoError(t, err)
	assert.Equal(t, "1 New Street, Pune", updated.ShippingAddress)

	// Not allowed after shipping.
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("order_status", models.OrderShipped).Error)
	_, err = UpdateShippingAddress(db, user.ID, order.ID, "2 Newer Street, Pune")
	require.ErrorIs(t, err, ErrInvalidTransition)
}
