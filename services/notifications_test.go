package services

import (
	"testing"

	"github.com/bemenstore/bemen-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotifications(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	other := createTestUser(t, db, "other@example.com")

	require.NoError(t, db.Create(&models.Notification{UserID: user.ID, Message: "Your order #1 was SHIPPED."}).Error)
	require.NoError(t, db.Create(&models.Notification{UserID: user.ID, Message: "Your order #1 was DELIVERED."}).Error)
	require.NoError(t, db.Create(&models.Notification{UserID: other.ID, Message: "Your order #2 was SHIPPED."}).Error)

	notifications, err := ListNotifications(db, user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.Equal(t, user.ID, n.UserID)
		assert.False(t, n.Read)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "shopper@example.com")
	other := createTestUser(t, db, "other@example.com")

	notification := models.Notification{UserID: user.ID, Message: "Your order #1 was SHIPPED."}
	require.NoError(t, db.Create(&notification).Error)

	// Another user cannot touch it.
	require.ErrorIs(t, MarkNotificationRead(db, other.ID, notification.ID), ErrNotFound)

	require.NoError(t, MarkNotificationRead(db, user.ID, notification.ID))

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, notification.ID).Error)
	assert.True(t, reloaded.Read)

	require.ErrorIs(t, MarkNotificationRead(db, user.ID, 9999), ErrNotFound)
}
