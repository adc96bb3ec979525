package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/auth"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/clientbridge-dev/clientbridge/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmitInquiryRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"phone"`
	Company           string `json:"company"`
	ServiceInterested string `json:"service_interested" binding:"required"`
	BudgetRange       string `json:"budget_range"`
	Description       string `json:"description" binding:"required"`
	PreferredTimeline string `json:"preferred_timeline"`
}

type UpdateInquiryRequest struct {
	Status        string `json:"status"`
	InternalNotes string `json:"internal_notes"`
}

func toInquiryResponse(inq models.Inquiry) types.InquiryResponse {
	return types.InquiryResponse{
		ID:                inq.ID,
		Name:              inq.Name,
		Email:             inq.Email,
		Phone:             inq.Phone,
		Company:           inq.Company,
		ServiceInterested: inq.ServiceInterested,
		BudgetRange:       inq.BudgetRange,
		Description:       inq.Description,
		PreferredTimeline: inq.PreferredTimeline,
		Status:            inq.Status,
		InternalNotes:     inq.InternalNotes,
		ProjectID:         inq.ProjectID,
		CreatedAt:         inq.CreatedAt,
	}
}

// SubmitInquiry is the public contact endpoint. Identical (email, description)
// pairs inside the dedup window are treated as accidental double-submits.
func SubmitInquiry(ctx *gin.Context) {
	var req SubmitInquiryRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Name, email, description and service are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var recent int64

	err := db.DB.Model(&models.Inquiry{}).
		Where("email = ? AND description = ? AND created_at > ?",
			req.Email, req.Description, time.Now().Add(-cfg.InquiryDedupWindow)).
		Count(&recent).Error

	if err != nil {
		log.Printf("Failed to check for duplicate inquiry: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	if recent > 0 {
		respondError(ctx, http.StatusConflict, "This inquiry was already submitted, we will be in touch shortly")
		return
	}

	inquiry := models.Inquiry{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Company:           req.Company,
		ServiceInterested: req.ServiceInterested,
		BudgetRange:       req.BudgetRange,
		Description:       req.Description,
		PreferredTimeline: req.PreferredTimeline,
		Status:            types.InquiryStatusNew,
	}

	if err := db.DB.Create(&inquiry).Error; err != nil {
		log.Printf("Failed to create inquiry: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	notify.InquiryReceived(inquiry)

	respondData(ctx, http.StatusCreated, toInquiryResponse(inquiry))
}

func ListInquiries(ctx *gin.Context) {
	var inquiries []models.Inquiry

	if err := db.DB.Order("created_at DESC").Find(&inquiries).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve inquiries")
		return
	}

	response := make([]types.InquiryResponse, 0, len(inquiries))

	for _, inquiry := range inquiries {
		response = append(response, toInquiryResponse(inquiry))
	}

	respondList(ctx, int64(len(response)), response)
}

func GetInquiry(ctx *gin.Context) {
	inquiryID, err := utils.GetInquiryID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var inquiry models.Inquiry

	if err := db.DB.First(&inquiry, inquiryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Inquiry not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve inquiry")
		}
		return
	}

	respondData(ctx, http.StatusOK, toInquiryResponse(inquiry))
}

func UpdateInquiry(ctx *gin.Context) {
	inquiryID, err := utils.GetInquiryID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateInquiryRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Status != "" && !types.IsValidInquiryStatus(req.Status) {
		respondError(ctx, http.StatusBadRequest, "Invalid inquiry status")
		return
	}

	var inquiry models.Inquiry

	if err := db.DB.First(&inquiry, inquiryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Inquiry not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve inquiry")
		}
		return
	}

	updates := make(map[string]interface{})

	if req.Status != "" {
		updates["status"] = req.Status
	}

	if req.InternalNotes != "" {
		updates["internal_notes"] = req.InternalNotes
	}

	if len(updates) == 0 {
		respondError(ctx, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if err := db.DB.Model(&inquiry).Updates(updates).Error; err != nil {
		log.Printf("Failed to update inquiry %d: %v", inquiry.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to update inquiry")
		return
	}

	respondData(ctx, http.StatusOK, toInquiryResponse(inquiry))
}

func DeleteInquiry(ctx *gin.Context) {
	inquiryID, err := utils.GetInquiryID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var inquiry models.Inquiry

	if err := db.DB.First(&inquiry, inquiryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Inquiry not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve inquiry")
		}
		return
	}

	if err := db.DB.Delete(&inquiry).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to delete inquiry")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// PromoteInquiry converts an inquiry into a tracked engagement: the matching
// client user is found or created, a project is seeded from the inquiry and
// the inquiry is marked converted. The three writes share one transaction.
func PromoteInquiry(ctx *gin.Context) {
	inquiryID, err := utils.GetInquiryID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var inquiry models.Inquiry

	if err := db.DB.First(&inquiry, inquiryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Inquiry not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve inquiry")
		}
		return
	}

	if inquiry.Status == types.InquiryStatusConverted {
		respondError(ctx, http.StatusConflict, "Inquiry has already been converted")
		return
	}

	var project models.ClientProject

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var client models.User

		err := tx.Where("email = ?", inquiry.Email).First(&client).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			passwordHash, hashErr := auth.HashPassword(randomPassword())
			if hashErr != nil {
				return hashErr
			}

			client = models.User{
				Name:         inquiry.Name,
				Email:        inquiry.Email,
				PasswordHash: passwordHash,
				Role:         types.RoleClient,
				Phone:        inquiry.Phone,
				Company:      inquiry.Company,
			}

			if err := tx.Create(&client).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		project = models.ClientProject{
			ClientID:    client.ID,
			ProjectName: fmt.Sprintf("%s for %s", inquiry.ServiceInterested, inquiry.Name),
			Description: inquiry.Description,
			ServiceType: inquiry.ServiceInterested,
			Timeline:    inquiry.PreferredTimeline,
			Status:      types.ProjectStatusInquiry,
		}

		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		return tx.Model(&inquiry).Updates(map[string]interface{}{
			"status":     types.InquiryStatusConverted,
			"project_id": project.ID,
		}).Error
	})

	if err != nil {
		log.Printf("Failed to promote inquiry %d: %v", inquiry.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to promote inquiry")
		return
	}

	respondData(ctx, http.StatusCreated, toProjectResponse(project, nil))
}

// randomPassword seeds accounts created through promotion; the client resets
// it through the normal password flow.
func randomPassword() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
