package types

import "strings"

const ContextUserKey = "user"

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

const (
	InquiryStatusNew          = "new"
	InquiryStatusContacted    = "contacted"
	InquiryStatusInDiscussion = "in_discussion"
	InquiryStatusConverted    = "converted"
	InquiryStatusDeclined     = "declined"
)

const (
	ProjectStatusInquiry    = "inquiry"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
)

const (
	MilestoneStatusNotStarted = "not_started"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
	MilestoneStatusOnHold     = "on_hold"
)

const (
	FileCategoryRequirement = "requirement"
	FileCategoryDeliverable = "deliverable"
	FileCategoryAsset       = "asset"
	FileCategoryOther       = "other"
)

const (
	NotificationTypeMessage   = "message"
	NotificationTypeMilestone = "milestone"
	NotificationTypeFile      = "file"
	NotificationTypePayment   = "payment"
	NotificationTypeInquiry   = "inquiry"
	NotificationTypeDeadline  = "deadline"
)

var (
	inquiryStatuses = map[string]bool{
		InquiryStatusNew:          true,
		InquiryStatusContacted:    true,
		InquiryStatusInDiscussion: true,
		InquiryStatusConverted:    true,
		InquiryStatusDeclined:     true,
	}

	projectStatuses = map[string]bool{
		ProjectStatusInquiry:    true,
		ProjectStatusInProgress: true,
		ProjectStatusCompleted:  true,
		ProjectStatusOnHold:     true,
	}

	milestoneStatuses = map[string]bool{
		MilestoneStatusNotStarted: true,
		MilestoneStatusInProgress: true,
		MilestoneStatusCompleted:  true,
		MilestoneStatusOnHold:     true,
	}

	fileCategories = map[string]bool{
		FileCategoryRequirement: true,
		FileCategoryDeliverable: true,
		FileCategoryAsset:       true,
		FileCategoryOther:       true,
	}
)

func IsValidInquiryStatus(s string) bool   { return inquiryStatuses[s] }
func IsValidProjectStatus(s string) bool   { return projectStatuses[s] }
func IsValidMilestoneStatus(s string) bool { return milestoneStatuses[s] }
func IsValidFileCategory(s string) bool    { return fileCategories[s] }

// CounterpartRole returns the role on the other side of a project thread.
func CounterpartRole(role string) string {
	if role == RoleAdmin {
		return RoleClient
	}
	return RoleAdmin
}

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// MergeAllowedOrigins combines the development defaults with any extra
// comma-separated origins from configuration.
func MergeAllowedOrigins(extra string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	for _, origin := range strings.Split(extra, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
