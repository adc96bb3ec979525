package handlers

import (
	"errors"
	"net/http"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/authz"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/clientbridge-dev/clientbridge/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func toNotificationResponse(n models.Notification) types.NotificationResponse {
	return types.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		RelatedID: n.RelatedID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// fetchOwnNotification loads a notification and verifies the requester owns
// it. Admins are not exempt here: notifications are personal records.
func fetchOwnNotification(ctx *gin.Context) (models.Notification, bool) {
	var notification models.Notification

	notificationID, err := utils.GetNotificationID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return notification, false
	}

	if err := db.DB.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Notification not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve notification")
		}
		return notification, false
	}

	identity := utils.GetIdentity(ctx)
	decision := authz.Authorize(identity, authz.ActionAccessNotification,
		authz.Resource{OwnerID: notification.UserID})

	// Ownership is personal even for admins acting on another user's feed.
	if !decision.Allowed || notification.UserID != identity.UserID {
		respondError(ctx, http.StatusNotFound, "Notification not found")
		return notification, false
	}

	return notification, true
}

func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var notifications []models.Notification

	if err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve notifications")
		return
	}

	var unread int64

	for _, notification := range notifications {
		if !notification.IsRead {
			unread++
		}
	}

	response := make([]types.NotificationResponse, 0, len(notifications))

	for _, notification := range notifications {
		response = append(response, toNotificationResponse(notification))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(response),
		"unread":  unread,
		"data":    response,
	})
}

func MarkNotificationRead(ctx *gin.Context) {
	notification, ok := fetchOwnNotification(ctx)

	if !ok {
		return
	}

	if err := db.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to update notification")
		return
	}

	notification.IsRead = true

	respondData(ctx, http.StatusOK, toNotificationResponse(notification))
}

func MarkAllNotificationsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	result := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)

	if result.Error != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "count": result.RowsAffected})
}

func DeleteNotification(ctx *gin.Context) {
	notification, ok := fetchOwnNotification(ctx)

	if !ok {
		return
	}

	if err := db.DB.Delete(&notification).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to delete notification")
		return
	}

	ctx.Status(http.StatusNoContent)
}
