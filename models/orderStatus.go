package models

type OrderStatus string

const (
	OrderProcessing     OrderStatus = "PROCESSING"
	OrderShipped        OrderStatus = "SHIPPED"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
	OrderReturnPending  OrderStatus = "RETURN_PENDING"
	OrderReturned       OrderStatus = "RETURNED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	MethodCOD     PaymentMethod = "COD"
	MethodGateway PaymentMethod = "RAZORPAY"
)

// validNext is the closed transition table for order statuses. A status
// missing from a row's set is not reachable from that row.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderProcessing:     {OrderShipped: true, OrderCancelled: true},
	OrderShipped:        {OrderOutForDelivery: true},
	OrderOutForDelivery: {OrderDelivered: true},
	OrderDelivered:      {OrderReturnPending: true},
	OrderReturnPending:  {OrderReturned: true, OrderDelivered: true},
	OrderCancelled:      {},
	OrderReturned:       {},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return validNext[s][to]
}

// Cancellable reports whether an order is still in its pre-shipment window.
// Once shipped, cancellation is no longer available to anyone.
func (s OrderStatus) Cancellable() bool {
	return s == OrderProcessing
}

func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}
