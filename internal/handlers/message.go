package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/authz"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/clientbridge-dev/clientbridge/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type SendMessageRequest struct {
	Content     string   `json:"content" binding:"required"`
	Attachments []string `json:"attachments"`
}

func toMessageResponse(m models.Message) types.MessageResponse {
	var attachments []string

	if len(m.Attachments) > 0 {
		if err := json.Unmarshal(m.Attachments, &attachments); err != nil {
			attachments = nil
		}
	}

	return types.MessageResponse{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		SenderID:    m.SenderID,
		SenderName:  m.Sender.Name,
		SenderRole:  m.SenderRole,
		Content:     m.Content,
		Attachments: attachments,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

// ListMessages returns the project thread in chronological order.
func ListMessages(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionViewProject)

	if !ok {
		return
	}

	var messages []models.Message

	if err := db.DB.Preload("Sender").
		Where("project_id = ?", project.ID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}

	response := make([]types.MessageResponse, 0, len(messages))

	for _, message := range messages {
		response = append(response, toMessageResponse(message))
	}

	respondList(ctx, int64(len(response)), response)
}

func SendMessage(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionPostMessage)

	if !ok {
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req SendMessageRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Message content is required")
		return
	}

	message := models.Message{
		ProjectID:  project.ID,
		SenderID:   currentUser.ID,
		SenderRole: currentUser.Role,
		Content:    req.Content,
	}

	if len(req.Attachments) > 0 {
		raw, err := json.Marshal(req.Attachments)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid attachments")
			return
		}
		message.Attachments = datatypes.JSON(raw)
	}

	if err := db.DB.Create(&message).Error; err != nil {
		log.Printf("Failed to create message on project %d: %v", project.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to send message")
		return
	}

	message.Sender.Name = currentUser.Name

	notify.MessageSent(project, message)

	respondData(ctx, http.StatusCreated, toMessageResponse(message))
}

// MarkMessagesRead flips the unread flag on every message sent by the
// counterpart role. A caller never marks its own side read.
func MarkMessagesRead(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionViewProject)

	if !ok {
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	result := db.DB.Model(&models.Message{}).
		Where("project_id = ? AND sender_role = ? AND is_read = ?",
			project.ID, types.CounterpartRole(currentUser.Role), false).
		Update("is_read", true)

	if result.Error != nil {
		log.Printf("Failed to mark messages read on project %d: %v", project.ID, result.Error)
		respondError(ctx, http.StatusInternalServerError, "Failed to mark messages as read")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "count": result.RowsAffected})
}
