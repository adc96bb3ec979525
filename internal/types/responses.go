package types

import "time"

type UserResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

type InquiryResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Company           string    `json:"company,omitempty"`
	ServiceInterested string    `json:"service_interested"`
	BudgetRange       string    `json:"budget_range,omitempty"`
	Description       string    `json:"description"`
	PreferredTimeline string    `json:"preferred_timeline,omitempty"`
	Status            string    `json:"status"`
	InternalNotes     string    `json:"internal_notes,omitempty"`
	ProjectID         *uint     `json:"project_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type MilestoneResponse struct {
	ID            uint       `json:"id"`
	Position      int        `json:"position"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	ExpectedDate  *time.Time `json:"expected_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}

type PaymentMilestoneResponse struct {
	ID          uint       `json:"id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	IsPaid      bool       `json:"is_paid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type PaymentStatusResponse struct {
	TotalAmount       float64                    `json:"total_amount"`
	DepositAmount     float64                    `json:"deposit_amount"`
	DepositPaid       bool                       `json:"deposit_paid"`
	FinalAmount       float64                    `json:"final_amount"`
	FinalPaid         bool                       `json:"final_paid"`
	MilestonePayments []PaymentMilestoneResponse `json:"milestone_payments"`
}

type ProjectResponse struct {
	ID                 uint                   `json:"id"`
	ClientID           uint                   `json:"client_id"`
	ClientName         string                 `json:"client_name,omitempty"`
	ProjectName        string                 `json:"project_name"`
	Description        string                 `json:"description,omitempty"`
	ServiceType        string                 `json:"service_type"`
	Budget             float64                `json:"budget,omitempty"`
	Timeline           string                 `json:"timeline,omitempty"`
	Status             string                 `json:"status"`
	CurrentMilestone   string                 `json:"current_milestone,omitempty"`
	ProgressPercentage int                    `json:"progress_percentage"`
	CompletedAt        *time.Time             `json:"completed_at,omitempty"`
	Milestones         []MilestoneResponse    `json:"milestones,omitempty"`
	Payment            *PaymentStatusResponse `json:"payment,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
}

type MessageResponse struct {
	ID          uint      `json:"id"`
	ProjectID   uint      `json:"project_id"`
	SenderID    uint      `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	SenderRole  string    `json:"sender_role"`
	Content     string    `json:"content"`
	Attachments []string  `json:"attachments,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

type FileResponse struct {
	ID           uint      `json:"id"`
	ProjectID    uint      `json:"project_id"`
	UploadedBy   uint      `json:"uploaded_by"`
	UploaderRole string    `json:"uploader_role"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	FileType     string    `json:"file_type,omitempty"`
	FileSize     int64     `json:"file_size,omitempty"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID *uint     `json:"related_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type PortfolioProjectResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	TechStack   []string  `json:"tech_stack,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	LiveURL     string    `json:"live_url,omitempty"`
	Featured    bool      `json:"featured"`
	IsPublished bool      `json:"is_published"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
}

type TestimonialResponse struct {
	ID            uint   `json:"id"`
	ClientName    string `json:"client_name"`
	ClientCompany string `json:"client_company,omitempty"`
	Content       string `json:"content"`
	Rating        int    `json:"rating"`
	IsPublished   bool   `json:"is_published"`
}
