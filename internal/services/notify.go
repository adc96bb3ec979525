package services

import (
	"fmt"
	"log"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/types"
)

// Notifier fans lifecycle events out to in-app notifications and email.
// Implementations must be fire-and-forget: the triggering request has already
// committed its write and must not block on or fail from delivery.
type Notifier interface {
	InquiryReceived(inq models.Inquiry)
	MilestoneUpdated(project models.ClientProject, milestone models.Milestone)
	PaymentUpdated(project models.ClientProject)
	MessageSent(project models.ClientProject, msg models.Message)
	FileUploaded(project models.ClientProject, file models.FileRecord)
}

// Noop discards every event. Used before Configure wires the real service and
// in tests.
type Noop struct{}

func (Noop) InquiryReceived(models.Inquiry)                          {}
func (Noop) MilestoneUpdated(models.ClientProject, models.Milestone) {}
func (Noop) PaymentUpdated(models.ClientProject)                     {}
func (Noop) MessageSent(models.ClientProject, models.Message)        {}
func (Noop) FileUploaded(models.ClientProject, models.FileRecord)    {}

type NotificationService struct {
	mailer     *Mailer
	adminEmail string
}

func NewNotificationService(mailer *Mailer, adminEmail string) *NotificationService {
	return &NotificationService{mailer: mailer, adminEmail: adminEmail}
}

// dispatch detaches the event from the triggering request. Panics and errors
// stay inside this boundary; they are logged, never propagated.
func (s *NotificationService) dispatch(event string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Notification dispatch panic (%s): %v", event, r)
			}
		}()

		if err := fn(); err != nil {
			log.Printf("Notification dispatch failed (%s): %v", event, err)
		}
	}()
}

// notify persists a single in-app notification record.
func (s *NotificationService) notify(userID uint, ntype, title, message string, relatedID *uint) error {
	record := models.Notification{
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
	}

	return db.DB.Create(&record).Error
}

// notifyAdmins creates one notification per admin user.
func (s *NotificationService) notifyAdmins(ntype, title, message string, relatedID *uint) error {
	var admins []models.User

	if err := db.DB.Where("role = ?", types.RoleAdmin).Find(&admins).Error; err != nil {
		return err
	}

	for _, admin := range admins {
		if err := s.notify(admin.ID, ntype, title, message, relatedID); err != nil {
			return err
		}
	}

	return nil
}

func (s *NotificationService) clientEmail(project models.ClientProject) string {
	var client models.User

	if err := db.DB.First(&client, project.ClientID).Error; err != nil {
		return ""
	}

	return client.Email
}

func (s *NotificationService) InquiryReceived(inq models.Inquiry) {
	id := inq.ID

	s.dispatch("inquiry received", func() error {
		title := "New project inquiry"
		message := fmt.Sprintf("%s is interested in %s", inq.Name, inq.ServiceInterested)

		if err := s.notifyAdmins(types.NotificationTypeInquiry, title, message, &id); err != nil {
			return err
		}

		if err := s.mailer.Send(s.adminEmail, title,
			fmt.Sprintf("<p>%s (%s) submitted an inquiry about %s.</p><p>%s</p>",
				inq.Name, inq.Email, inq.ServiceInterested, inq.Description)); err != nil {
			return err
		}

		return s.mailer.Send(inq.Email, "We received your inquiry",
			fmt.Sprintf("<p>Hi %s,</p><p>Thanks for reaching out about %s. We will get back to you shortly.</p>",
				inq.Name, inq.ServiceInterested))
	})
}

func (s *NotificationService) MilestoneUpdated(project models.ClientProject, milestone models.Milestone) {
	id := project.ID

	s.dispatch("milestone updated", func() error {
		title := "Milestone update"
		message := fmt.Sprintf("Milestone %q on %q is now %s", milestone.Name, project.ProjectName, milestone.Status)

		if err := s.notify(project.ClientID, types.NotificationTypeMilestone, title, message, &id); err != nil {
			return err
		}

		return s.mailer.Send(s.clientEmail(project), title,
			fmt.Sprintf("<p>%s</p>", message))
	})
}

func (s *NotificationService) PaymentUpdated(project models.ClientProject) {
	id := project.ID

	s.dispatch("payment updated", func() error {
		title := "Payment status updated"
		message := fmt.Sprintf("Payment details for %q were updated", project.ProjectName)

		return s.notify(project.ClientID, types.NotificationTypePayment, title, message, &id)
	})
}

func (s *NotificationService) MessageSent(project models.ClientProject, msg models.Message) {
	id := project.ID

	s.dispatch("message sent", func() error {
		title := "New message"
		message := fmt.Sprintf("New message on %q", project.ProjectName)

		if msg.SenderRole == types.RoleAdmin {
			return s.notify(project.ClientID, types.NotificationTypeMessage, title, message, &id)
		}

		return s.notifyAdmins(types.NotificationTypeMessage, title, message, &id)
	})
}

func (s *NotificationService) FileUploaded(project models.ClientProject, file models.FileRecord) {
	id := project.ID

	s.dispatch("file uploaded", func() error {
		title := "New file"
		message := fmt.Sprintf("%s was uploaded to %q", file.FileName, project.ProjectName)

		if file.UploaderRole == types.RoleAdmin {
			return s.notify(project.ClientID, types.NotificationTypeFile, title, message, &id)
		}

		return s.notifyAdmins(types.NotificationTypeFile, title, message, &id)
	})
}
