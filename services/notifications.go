package services

import (
	"fmt"
	"log"

	"github.com/bemenstore/bemen-api/models"
	"gorm.io/gorm"
)

// notifyStatusChange records one notification for the order's owner after a
// status transition actually changed the status. Best-effort: the transition
// is already committed, so a failed insert is logged and dropped rather than
// surfaced to the caller.
func notifyStatusChange(db *gorm.DB, order *models.Order, previous models.OrderStatus) {
	if order.OrderStatus == previous {
		return
	}

	notification := models.Notification{
		UserID:  order.UserID,
		Message: fmt.Sprintf("Your order #%d was %s.", order.ID, order.OrderStatus),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for order %d: %v", order.ID, err)
	}
}

func ListNotifications(db *gorm.DB, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

func MarkNotificationRead(db *gorm.DB, userID, notificationID uint) error {
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
