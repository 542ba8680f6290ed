package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID    uint    `json:"userId"`
	User      *User   `json:"user,omitempty"`
	ProductID uint    `json:"productId"`
	Product   Product `json:"product"`

	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	TotalAmount decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2)"`

	PaymentMethod    PaymentMethod `json:"paymentMethod" gorm:"size:20"`
	PaymentStatus    PaymentStatus `json:"paymentStatus" gorm:"size:20;default:PENDING"`
	GatewayOrderID   string        `json:"gatewayOrderId" gorm:"size:255"`
	GatewayPaymentID string        `json:"gatewayPaymentId" gorm:"size:255"`

	OrderStatus OrderStatus `json:"orderStatus" gorm:"size:20;default:PROCESSING"`

	CancellationReason string     `json:"cancellationReason"`
	CancelledAt        *time.Time `json:"cancelledAt"`
	ReturnReason       string     `json:"returnReason"`
	ReturnedAt         *time.Time `json:"returnedAt"`

	TrackingID   string     `json:"trackingId" gorm:"size:100"`
	DeliveryDate *time.Time `json:"deliveryDate"`

	ShippingAddress string `json:"shippingAddress"`
	Phone           string `json:"phone" gorm:"size:15"`
}

type Notification struct {
	gorm.Model
	UserID  uint   `json:"userId"`
	Message string `json:"message"`
	Read    bool   `json:"read" gorm:"default:false"`
}
