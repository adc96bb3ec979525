package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/clientbridge-dev/clientbridge/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PortfolioProjectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	TechStack   []string `json:"tech_stack"`
	ImageURL    string   `json:"image_url"`
	LiveURL     string   `json:"live_url"`
	Featured    *bool    `json:"featured"`
	IsPublished *bool    `json:"is_published"`
}

type TestimonialRequest struct {
	ClientName    string `json:"client_name" binding:"required"`
	ClientCompany string `json:"client_company"`
	Content       string `json:"content" binding:"required"`
	Rating        int    `json:"rating"`
	IsPublished   *bool  `json:"is_published"`
}

func toPortfolioResponse(p models.PortfolioProject) types.PortfolioProjectResponse {
	var techStack []string

	if len(p.TechStack) > 0 {
		if err := json.Unmarshal(p.TechStack, &techStack); err != nil {
			techStack = nil
		}
	}

	return types.PortfolioProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		TechStack:   techStack,
		ImageURL:    p.ImageURL,
		LiveURL:     p.LiveURL,
		Featured:    p.Featured,
		IsPublished: p.IsPublished,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt,
	}
}

func toTestimonialResponse(t models.Testimonial) types.TestimonialResponse {
	return types.TestimonialResponse{
		ID:            t.ID,
		ClientName:    t.ClientName,
		ClientCompany: t.ClientCompany,
		Content:       t.Content,
		Rating:        t.Rating,
		IsPublished:   t.IsPublished,
	}
}

// isAdminRequest reports whether an authenticated admin made the request.
// Public endpoints use it to widen visibility rather than to gate access.
func isAdminRequest(ctx *gin.Context) bool {
	user, err := utils.GetCurrentUser(ctx)
	return err == nil && user.Role == types.RoleAdmin
}

func ListPortfolioProjects(ctx *gin.Context) {
	query := db.DB.Order("featured DESC, created_at DESC")

	if !isAdminRequest(ctx) {
		query = query.Where("is_published = ?", true)
	}

	var projects []models.PortfolioProject

	if err := query.Find(&projects).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve portfolio")
		return
	}

	response := make([]types.PortfolioProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, toPortfolioResponse(project))
	}

	respondList(ctx, int64(len(response)), response)
}

func GetPortfolioProject(ctx *gin.Context) {
	portfolioID, err := utils.GetPortfolioID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var project models.PortfolioProject

	if err := db.DB.First(&project, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Portfolio project not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve portfolio project")
		}
		return
	}

	if !project.IsPublished && !isAdminRequest(ctx) {
		respondError(ctx, http.StatusNotFound, "Portfolio project not found")
		return
	}

	// Best-effort view counter; a lost increment is acceptable.
	if err := db.DB.Model(&models.PortfolioProject{}).
		Where("id = ?", project.ID).
		Update("views", gorm.Expr("views + 1")).Error; err != nil {
		log.Printf("Failed to increment views for portfolio project %d: %v", project.ID, err)
	} else {
		project.Views++
	}

	respondData(ctx, http.StatusOK, toPortfolioResponse(project))
}

func CreatePortfolioProject(ctx *gin.Context) {
	var req PortfolioProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Title is required")
		return
	}

	project := models.PortfolioProject{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		LiveURL:     req.LiveURL,
		IsPublished: true,
	}

	if req.Featured != nil {
		project.Featured = *req.Featured
	}

	if req.IsPublished != nil {
		project.IsPublished = *req.IsPublished
	}

	if len(req.TechStack) > 0 {
		raw, err := json.Marshal(req.TechStack)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid tech stack")
			return
		}
		project.TechStack = datatypes.JSON(raw)
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create portfolio project: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Failed to create portfolio project")
		return
	}

	respondData(ctx, http.StatusCreated, toPortfolioResponse(project))
}

func UpdatePortfolioProject(ctx *gin.Context) {
	portfolioID, err := utils.GetPortfolioID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var project models.PortfolioProject

	if err := db.DB.First(&project, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Portfolio project not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve portfolio project")
		}
		return
	}

	var req PortfolioProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Title is required")
		return
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Category = req.Category
	project.ImageURL = req.ImageURL
	project.LiveURL = req.LiveURL

	if req.Featured != nil {
		project.Featured = *req.Featured
	}

	if req.IsPublished != nil {
		project.IsPublished = *req.IsPublished
	}

	if req.TechStack != nil {
		raw, err := json.Marshal(req.TechStack)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid tech stack")
			return
		}
		project.TechStack = datatypes.JSON(raw)
	}

	if err := db.DB.Save(&project).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to update portfolio project")
		return
	}

	respondData(ctx, http.StatusOK, toPortfolioResponse(project))
}

func DeletePortfolioProject(ctx *gin.Context) {
	portfolioID, err := utils.GetPortfolioID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var project models.PortfolioProject

	if err := db.DB.First(&project, portfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Portfolio project not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve portfolio project")
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to delete portfolio project")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListTestimonials(ctx *gin.Context) {
	query := db.DB.Order("created_at DESC")

	if !isAdminRequest(ctx) {
		query = query.Where("is_published = ?", true)
	}

	var testimonials []models.Testimonial

	if err := query.Find(&testimonials).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve testimonials")
		return
	}

	response := make([]types.TestimonialResponse, 0, len(testimonials))

	for _, testimonial := range testimonials {
		response = append(response, toTestimonialResponse(testimonial))
	}

	respondList(ctx, int64(len(response)), response)
}

func CreateTestimonial(ctx *gin.Context) {
	var req TestimonialRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Client name and content are required")
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		respondError(ctx, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	testimonial := models.Testimonial{
		ClientName:    req.ClientName,
		ClientCompany: req.ClientCompany,
		Content:       req.Content,
		Rating:        req.Rating,
		IsPublished:   true,
	}

	if req.IsPublished != nil {
		testimonial.IsPublished = *req.IsPublished
	}

	if err := db.DB.Create(&testimonial).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}

	respondData(ctx, http.StatusCreated, toTestimonialResponse(testimonial))
}

func UpdateTestimonial(ctx *gin.Context) {
	testimonialID, err := utils.GetTestimonialID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var testimonial models.Testimonial

	if err := db.DB.First(&testimonial, testimonialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Testimonial not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve testimonial")
		}
		return
	}

	var req TestimonialRequest

	if err := ctx.BindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Client name and content are required")
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		respondError(ctx, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	testimonial.ClientName = req.ClientName
	testimonial.ClientCompany = req.ClientCompany
	testimonial.Content = req.Content
	testimonial.Rating = req.Rating

	if req.IsPublished != nil {
		testimonial.IsPublished = *req.IsPublished
	}

	if err := db.DB.Save(&testimonial).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}

	respondData(ctx, http.StatusOK, toTestimonialResponse(testimonial))
}

func DeleteTestimonial(ctx *gin.Context) {
	testimonialID, err := utils.GetTestimonialID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var testimonial models.Testimonial

	if err := db.DB.First(&testimonial, testimonialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "Testimonial not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve testimonial")
		}
		return
	}

	if err := db.DB.Delete(&testimonial).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}

	ctx.Status(http.StatusNoContent)
}
