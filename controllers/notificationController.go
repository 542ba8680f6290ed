package controllers

import (
	"net/http"
	"strconv"

	"github.com/bemenstore/bemen-api/initializers"
	"github.com/bemenstore/bemen-api/services"
	"github.com/gin-gonic/gin"
)

// GetNotifications lists the user's notifications, newest first.
func GetNotifications(ctx *gin.Context) {
	notifications, err := services.ListNotifications(initializers.DB, currentUserID(ctx))
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(ctx *gin.Context) {
	notificationId, err := strconv.Atoi(ctx.Param("notificationId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse notificationId")
		return
	}

	err = services.MarkNotificationRead(initializers.DB, currentUserID(ctx), uint(notificationId))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Notification marked as read"})
}
