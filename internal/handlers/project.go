package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/authz"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/clientbridge-dev/clientbridge/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MilestoneInput struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	ExpectedDate *time.Time `json:"expected_date"`
}

type CreateProjectRequest struct {
	ClientID    uint             `json:"client_id" binding:"required"`
	ProjectName string           `json:"project_name" binding:"required"`
	Description string           `json:"description"`
	ServiceType string           `json:"service_type" binding:"required"`
	Budget      float64          `json:"budget"`
	Timeline    string           `json:"timeline"`
	Milestones  []MilestoneInput `json:"milestones"`
}

type UpdateProjectRequest struct {
	ProjectName        *string  `json:"project_name"`
	Description        *string  `json:"description"`
	ServiceType        *string  `json:"service_type"`
	Budget             *float64 `json:"budget"`
	Timeline           *string  `json:"timeline"`
	Status             *string  `json:"status"`
	CurrentMilestone   *string  `json:"current_milestone"`
	ProgressPercentage *int     `json:"progress_percentage"`
}

type UpdateMilestoneStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentMilestoneInput struct {
	Description string     `json:"description" binding:"required"`
	Amount      float64    `json:"amount"`
	DueDate     *time.Time `json:"due_date"`
	IsPaid      bool       `json:"is_paid"`
}

type UpdatePaymentRequest struct {
	TotalAmount       *float64                 `json:"total_amount"`
	DepositAmount     *float64                 `json:"deposit_amount"`
	DepositPaid       *bool                    `json:"deposit_paid"`
	FinalAmount       *float64                 `json:"final_amount"`
	FinalPaid         *bool                    `json:"final_paid"`
	MilestonePayments *[]PaymentMilestoneInput `json:"milestone_payments"`
}

func toMilestoneResponse(m models.Milestone) types.MilestoneResponse {
	return types.MilestoneResponse{
		ID:            m.ID,
		Position:      m.Position,
		Name:          m.Name,
		Description:   m.Description,
		Status:        m.Status,
		ExpectedDate:  m.ExpectedDate,
		CompletedDate: m.CompletedDate,
	}
}

func toProjectResponse(p models.ClientProject, client *models.User) types.ProjectResponse {
	clientName := p.Client.Name
	if client != nil {
		clientName = client.Name
	}

	milestones := make([]types.MilestoneResponse, 0, len(p.Milestones))
	for _, m := range p.Milestones {
		milestones = append(milestones, toMilestoneResponse(m))
	}

	payments := make([]types.PaymentMilestoneResponse, 0, len(p.PaymentMilestones))
	for _, pm := range p.PaymentMilestones {
		payments = append(payments, types.PaymentMilestoneResponse{
			ID:          pm.ID,
			Description: pm.Description,
			Amount:      pm.Amount,
			IsPaid:      pm.IsPaid,
			DueDate:     pm.DueDate,
		})
	}

	return types.ProjectResponse{
		ID:                 p.ID,
		ClientID:           p.ClientID,
		ClientName:         clientName,
		ProjectName:        p.ProjectName,
		Description:        p.Description,
		ServiceType:        p.ServiceType,
		Budget:             p.Budget,
		Timeline:           p.Timeline,
		Status:             p.Status,
		CurrentMilestone:   p.CurrentMilestone,
		ProgressPercentage: p.ProgressPercentage,
		CompletedAt:        p.CompletedAt,
		Milestones:         milestones,
		Payment: &types.PaymentStatusResponse{
			TotalAmount:       p.Payment.TotalAmount,
			DepositAmount:     p.Payment.DepositAmount,
			DepositPaid:       p.Payment.DepositPaid,
			FinalAmount:       p.Payment.FinalAmount,
			FinalPaid:         p.Payment.FinalPaid,
			MilestonePayments: payments,
		},
		CreatedAt: p.CreatedAt,
	}
}

// fetchGatedProject loads a project and runs the access gate for the given
// action. It writes the error response itself and reports success.
func fetchGatedProject(ctx *gin.Context, action authz.Action) (models.ClientProject, bool) {
	var project models.ClientProject

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return project, false
	}

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Project not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve project")
		}
		return project, false
	}

	decision := authz.Authorize(utils.GetIdentity(ctx), action, authz.Resource{ProjectClientID: project.ClientID})

	if !decision.Allowed {
		if decision.Reason == authz.ReasonUnauthenticated {
			respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		} else {
			respondError(ctx, http.StatusForbidden, "You do not have access to this project")
		}
		return project, false
	}

	return project, true
}

func CreateProject(ctx *gin.Context) {
	decision := authz.Authorize(utils.GetIdentity(ctx), authz.ActionManageProject, authz.Resource{})

	if !decision.Allowed {
		if decision.Reason == authz.ReasonUnauthenticated {
			respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		} else {
			respondError(ctx, http.StatusForbidden, "Admin access required")
		}
		return
	}

	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Client, project name and service type are required")
		return
	}

	if req.Budget < 0 {
		respondError(ctx, http.StatusBadRequest, "Budget must not be negative")
		return
	}

	var client models.User

	if err := db.DB.First(&client, req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusBadRequest, "Client does not exist")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve client")
		}
		return
	}

	project := models.ClientProject{
		ClientID:    req.ClientID,
		ProjectName: req.ProjectName,
		Description: req.Description,
		ServiceType: req.ServiceType,
		Budget:      req.Budget,
		Timeline:    req.Timeline,
		Status:      types.ProjectStatusInquiry,
	}

	for i, m := range req.Milestones {
		project.Milestones = append(project.Milestones, models.Milestone{
			Position:     i + 1,
			Name:         m.Name,
			Description:  m.Description,
			Status:       types.MilestoneStatusNotStarted,
			ExpectedDate: m.ExpectedDate,
		})
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Failed to create project")
		return
	}

	respondData(ctx, http.StatusCreated, toProjectResponse(project, &client))
}

func ListProjects(ctx *gin.Context) {
	identity := utils.GetIdentity(ctx)

	if !identity.Authenticated {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	query := db.DB.Order("created_at DESC")

	// Admins see every engagement; clients only their own.
	if identity.Role != types.RoleAdmin {
		query = query.Where("client_id = ?", identity.UserID)
	}

	var projects []models.ClientProject

	if err := query.Find(&projects).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, toProjectResponse(project, nil))
	}

	respondList(ctx, int64(len(response)), response)
}

func GetProject(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionViewProject)

	if !ok {
		return
	}

	if err := db.DB.
		Preload("Client").
		Preload("Milestones", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Preload("PaymentMilestones").
		First(&project, project.ID).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve project")
		return
	}

	respondData(ctx, http.StatusOK, toProjectResponse(project, nil))
}

func UpdateProject(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionManageProject)

	if !ok {
		return
	}

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	updates := make(map[string]interface{})

	if req.ProjectName != nil {
		updates["project_name"] = *req.ProjectName
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if req.ServiceType != nil {
		updates["service_type"] = *req.ServiceType
	}

	if req.Budget != nil {
		if *req.Budget < 0 {
			respondError(ctx, http.StatusBadRequest, "Budget must not be negative")
			return
		}
		updates["budget"] = *req.Budget
	}

	if req.Timeline != nil {
		updates["timeline"] = *req.Timeline
	}

	if req.CurrentMilestone != nil {
		updates["current_milestone"] = *req.CurrentMilestone
	}

	if req.ProgressPercentage != nil {
		if *req.ProgressPercentage < 0 || *req.ProgressPercentage > 100 {
			respondError(ctx, http.StatusBadRequest, "Progress percentage must be between 0 and 100")
			return
		}
		updates["progress_percentage"] = *req.ProgressPercentage
	}

	if req.Status != nil {
		if !types.IsValidProjectStatus(*req.Status) {
			respondError(ctx, http.StatusBadRequest, "Invalid project status")
			return
		}

		updates["status"] = *req.Status

		if *req.Status == types.ProjectStatusCompleted && project.Status != types.ProjectStatusCompleted {
			updates["completed_at"] = time.Now()
		}
	}

	if len(updates) == 0 {
		respondError(ctx, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if err := db.DB.Model(&project).Updates(updates).Error; err != nil {
		log.Printf("Failed to update project %d: %v", project.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to update project")
		return
	}

	respondData(ctx, http.StatusOK, toProjectResponse(project, nil))
}

func DeleteProject(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionManageProject)

	if !ok {
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AddMilestone(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionManageProject)

	if !ok {
		return
	}

	var req MilestoneInput

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Milestone name is required")
		return
	}

	var maxPosition int

	if err := db.DB.Model(&models.Milestone{}).
		Where("project_id = ?", project.ID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to add milestone")
		return
	}

	milestone := models.Milestone{
		ProjectID:    project.ID,
		Position:     maxPosition + 1,
		Name:         req.Name,
		Description:  req.Description,
		Status:       types.MilestoneStatusNotStarted,
		ExpectedDate: req.ExpectedDate,
	}

	if err := db.DB.Create(&milestone).Error; err != nil {
		log.Printf("Failed to add milestone to project %d: %v", project.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to add milestone")
		return
	}

	respondData(ctx, http.StatusCreated, toMilestoneResponse(milestone))
}

// UpdateMilestoneStatus advances a single milestone. The write targets the
// milestone row alone, so concurrent edits to sibling milestones cannot
// clobber each other.
func UpdateMilestoneStatus(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionManageProject)

	if !ok {
		return
	}

	milestoneID, err := utils.GetMilestoneID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateMilestoneStatusRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Milestone status is required")
		return
	}

	if !types.IsValidMilestoneStatus(req.Status) {
		respondError(ctx, http.StatusBadRequest, "Invalid milestone status")
		return
	}

	var milestone models.Milestone

	if err := db.DB.Where("id = ? AND project_id = ?", milestoneID, project.ID).First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Milestone not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve milestone")
		}
		return
	}

	updates := map[string]interface{}{"status": req.Status}

	// Completion stamps the transition time. Moving away from completed
	// leaves the old stamp in place.
	var completedDate *time.Time

	if req.Status == types.MilestoneStatusCompleted {
		now := time.Now()
		completedDate = &now
		updates["completed_date"] = now
	}

	if err := db.DB.Model(&models.Milestone{}).
		Where("id = ? AND project_id = ?", milestone.ID, project.ID).
		Updates(updates).Error; err != nil {
		log.Printf("Failed to update milestone %d: %v", milestone.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to update milestone")
		return
	}

	milestone.Status = req.Status
	if completedDate != nil {
		milestone.CompletedDate = completedDate
	}

	refreshCurrentMilestone(project)

	notify.MilestoneUpdated(project, milestone)

	respondData(ctx, http.StatusOK, toMilestoneResponse(milestone))
}

// refreshCurrentMilestone points the project's denormalized current_milestone
// at the first not-yet-completed milestone. Best-effort; failures are logged.
func refreshCurrentMilestone(project models.ClientProject) {
	var next models.Milestone

	current := ""

	err := db.DB.Where("project_id = ? AND status != ?", project.ID, types.MilestoneStatusCompleted).
		Order("position ASC").
		First(&next).Error

	if err == nil {
		current = next.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to find current milestone for project %d: %v", project.ID, err)
		return
	}

	if err := db.DB.Model(&models.ClientProject{}).
		Where("id = ?", project.ID).
		Update("current_milestone", current).Error; err != nil {
		log.Printf("Failed to refresh current milestone for project %d: %v", project.ID, err)
	}
}

func UpdatePayment(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionManageProject)

	if !ok {
		return
	}

	var req UpdatePaymentRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	updates := make(map[string]interface{})

	if req.TotalAmount != nil {
		updates["payment_total_amount"] = *req.TotalAmount
	}

	if req.DepositAmount != nil {
		updates["payment_deposit_amount"] = *req.DepositAmount
	}

	if req.DepositPaid != nil {
		updates["payment_deposit_paid"] = *req.DepositPaid
	}

	if req.FinalAmount != nil {
		updates["payment_final_amount"] = *req.FinalAmount
	}

	if req.FinalPaid != nil {
		updates["payment_final_paid"] = *req.FinalPaid
	}

	if len(updates) == 0 && req.MilestonePayments == nil {
		respondError(ctx, http.StatusBadRequest, "No valid fields to update")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.ClientProject{}).
				Where("id = ?", project.ID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.MilestonePayments != nil {
			if err := tx.Where("project_id = ?", project.ID).
				Delete(&models.PaymentMilestone{}).Error; err != nil {
				return err
			}

			for _, pm := range *req.MilestonePayments {
				record := models.PaymentMilestone{
					ProjectID:   project.ID,
					Description: pm.Description,
					Amount:      pm.Amount,
					IsPaid:      pm.IsPaid,
					DueDate:     pm.DueDate,
				}

				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to update payment for project %d: %v", project.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to update payment status")
		return
	}

	notify.PaymentUpdated(project)

	respondMessage(ctx, http.StatusOK, "Payment status updated")
}
