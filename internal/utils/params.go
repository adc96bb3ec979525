package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func getIDParam(ctx *gin.Context, name string, label string) (uint64, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(label + " ID not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + label + " ID")
	}

	return id, nil
}

func GetProjectID(ctx *gin.Context) (uint64, error) {
	return getIDParam(ctx, "project_id", "Project")
}

func GetInquiryID(ctx *gin.Context) (uint64, error) {
	return getIDParam(ctx, "inquiry_id", "Inquiry")
}

func GetMilestoneID(ctx *gin.Context) (uint64, error) {
	return getIDParam(ctx, "milestone_id", "Milestone")
}

func GetFileID(ctx *gin.Context) (uint64, error) {
	return getIDParam(ctx, "file_id", "File")
}

func GetNotificationID(ctx *gin.Context) (uint64, error) {
	return getIDParam(ctx, "notification_id", "Notification")
}

func GetPortfolioID(ctx *gin.Context) (uint64, error) {
	return getIDParam(ctx, "portfolio_id", "Portfolio project")
}

func GetTestimonialID(ctx *gin.Context) (uint64, error) {
	return getIDParam(ctx, "testimonial_id", "Testimonial")
}
