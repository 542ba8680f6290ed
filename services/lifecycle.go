package services

import (
	"errors"
	"time"

	"github.com/bemenstore/bemen-api/models"
	"gorm.io/gorm"
)

// The order lifecycle. Every mutation here runs inside one transaction, and
// any transition that actually changes the order status is followed by a
// best-effort notification once the transaction has committed.

func getUserOrder(tx *gorm.DB, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels a user's own order while it is still pre-shipment.
// Atomically: status to CANCELLED, cancellation fields set, a PAID payment
// marked REFUNDED, and the reserved stock credited back.
func CancelOrder(db *gorm.DB, userID, orderID uint, reason string) (*models.Order, error) {
	if reason == "" {
		return nil, validationErr("cancellation reason is required")
	}

	var order *models.Order
	var previous models.OrderStatus

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = getUserOrder(tx, userID, orderID)
		if err != nil {
			return err
		}
		previous = order.OrderStatus

		if !order.OrderStatus.Cancellable() {
			return ErrInvalidTransition
		}

		now := time.Now()
		order.OrderStatus = models.OrderCancelled
		order.CancellationReason = reason
		order.CancelledAt = &now
		if order.PaymentStatus == models.PaymentPaid {
			order.PaymentStatus = models.PaymentRefunded
		}
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		return ReleaseStock(tx, order.ProductID, order.Quantity)
	})
	if err != nil {
		return nil, err
	}

	notifyStatusChange(db, order, previous)
	return order, nil
}

// RequestReturn moves a delivered order into RETURN_PENDING.
func RequestReturn(db *gorm.DB, userID, orderID uint, reason string) (*models.Order, error) {
	if reason == "" {
		return nil, validationErr("return reason is required")
	}

	var order *models.Order
	var previous models.OrderStatus

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = getUserOrder(tx, userID, orderID)
		if err != nil {
			return err
		}
		previous = order.OrderStatus

		if order.OrderStatus != models.OrderDelivered {
			return ErrInvalidTransition
		}

		order.OrderStatus = models.OrderReturnPending
		order.ReturnReason = reason
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	notifyStatusChange(db, order, previous)
	return order, nil
}

const (
	ReturnActionApprove = "approve"
	ReturnActionReject  = "reject"
)

// ResolveReturn is the admin decision on a pending return. Approving credits
// the stock back and, for gateway payments, marks the payment refunded.
// Rejecting reverts the order to DELIVERED and changes nothing else.
func ResolveReturn(db *gorm.DB, orderID uint, action string) (*models.Order, error) {
	if action != ReturnActionApprove && action != ReturnActionReject {
		return nil, validationErr("invalid action, use 'approve' or 'reject'")
	}

	var order models.Order
	var previous models.OrderStatus

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		previous = order.OrderStatus

		if order.OrderStatus != models.OrderReturnPending {
			return ErrInvalidTransition
		}

		if action == ReturnActionReject {
			order.OrderStatus = models.OrderDelivered
			return tx.Save(&order).Error
		}

		now := time.Now()
		order.OrderStatus = models.OrderReturned
		order.ReturnedAt = &now
		if order.PaymentMethod == models.MethodGateway {
			order.PaymentStatus = models.PaymentRefunded
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return ReleaseStock(tx, order.ProductID, order.Quantity)
	})
	if err != nil {
		return nil, err
	}

	notifyStatusChange(db, &order, previous)
	return &order, nil
}

// AdminOrderUpdate carries the fields an admin may patch on an order. Nil
// pointers leave the corresponding field untouched.
type AdminOrderUpdate struct {
	Status             *models.OrderStatus
	TrackingID         *string
	DeliveryDate       *time.Time
	CancellationReason string
}

// AdminUpdateOrder applies shipping metadata and status changes. A status
// change must follow the transition table; moving to CANCELLED carries the
// full cancellation effect, with the payment forced to REFUNDED whenever the
// order was prepaid through the gateway.
func AdminUpdateOrder(db *gorm.DB, orderID uint, update AdminOrderUpdate) (*models.Order, error) {
	var order models.Order
	var previous models.OrderStatus

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		previous = order.OrderStatus

		if update.TrackingID != nil {
			order.TrackingID = *update.TrackingID
		}
		if update.DeliveryDate != nil {
			order.DeliveryDate = update.DeliveryDate
		}

		if update.Status != nil && *update.Status != order.OrderStatus {
			next := *update.Status
			if !next.Valid() {
				return validationErr("unknown order status %q", next)
			}
			if !order.OrderStatus.CanTransition(next) {
				return ErrInvalidTransition
			}

			order.OrderStatus = next
			if next == models.OrderCancelled {
				now := time.Now()
				order.CancelledAt = &now
				if update.CancellationReason != "" {
					order.CancellationReason = update.CancellationReason
				}
				if order.PaymentMethod == models.MethodGateway {
					order.PaymentStatus = models.PaymentRefunded
				} else if order.PaymentStatus == models.PaymentPaid {
					order.PaymentStatus = models.PaymentRefunded
				}
			}
		}

		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if order.OrderStatus == models.OrderCancelled && previous != models.OrderCancelled {
			return ReleaseStock(tx, order.ProductID, order.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyStatusChange(db, &order, previous)
	return &order, nil
}

// UpdateShippingAddress lets a user change the destination while the order
// has not shipped yet.
func UpdateShippingAddress(db *gorm.DB, userID, orderID uint, address string) (*models.Order, error) {
	if address == "" {
		return nil, validationErr("shipping address is required")
	}

	order, err := getUserOrder(db, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.OrderStatus.Cancellable() {
		return nil, ErrInvalidTransition
	}

	order.ShippingAddress = address
	if err := db.Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}
