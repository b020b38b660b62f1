package services

import (
	"fmt"
	"log"

	"review-portal-api/config"
	"review-portal-api/models"

	"gorm.io/gorm"
)

// NotificationService writes in-app notification rows and sends best-effort
// email. Delivery failures are logged and never fail the triggering request.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	if db == nil {
		return nil
	}
	return &NotificationService{db: db}
}

// AssignmentsCreated notifies every reviewer in a freshly created batch.
func (n *NotificationService) AssignmentsCreated(item *models.SubmittedItem, assignments []models.ReviewAssignment, reviewers []models.User) {
	if n == nil {
		return
	}

	emails := make([]string, 0, len(reviewers))
	byID := make(map[int]models.User, len(reviewers))
	for _, reviewer := range reviewers {
		byID[reviewer.UserID] = reviewer
	}

	for _, assignment := range assignments {
		notification := models.Notification{
			UserID:   uint(assignment.ReviewerID),
			Title:    "New review assignment",
			Message:  fmt.Sprintf("You have been assigned to review %q. Due %s.", item.Title, assignment.DueAt.Format("2 Jan 2006")),
			Type:     "info",
			CreateAt: assignment.CreateAt,
		}
		attachItemRef(&notification, item)
		if err := n.db.Create(&notification).Error; err != nil {
			log.Printf("Warning: failed to create assignment notification for reviewer %d: %v", assignment.ReviewerID, err)
		}
		if reviewer, ok := byID[assignment.ReviewerID]; ok && reviewer.Email != "" {
			emails = append(emails, reviewer.Email)
		}
	}

	if len(emails) > 0 {
		subject := fmt.Sprintf("Review assignment: %s", item.Title)
		body := fmt.Sprintf("<p>You have been assigned to review <strong>%s</strong>.</p><p>Reviews are due %s.</p>",
			item.Title, assignments[0].DueAt.Format("2 January 2006"))
		if err := config.SendMail(emails, subject, body); err != nil {
			log.Printf("Warning: failed to send assignment mail: %v", err)
		}
	}
}

// ItemFinalized notifies the submitter that the aggregated outcome is in.
func (n *NotificationService) ItemFinalized(item *models.SubmittedItem, final models.DecisionValue) {
	if n == nil {
		return
	}

	notification := models.Notification{
		UserID:  uint(item.SubmitterID),
		Title:   "Review completed",
		Message: fmt.Sprintf("The review of %q is complete: %s.", item.Title, final.Label()),
		Type:    "success",
	}
	if final == models.DecisionReject {
		notification.Type = "error"
	}
	attachItemRef(&notification, item)
	if err := n.db.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create finalization notification for user %d: %v", item.SubmitterID, err)
	}

	var submitter models.User
	if err := n.db.Where("user_id = ? AND delete_at IS NULL", item.SubmitterID).First(&submitter).Error; err != nil {
		log.Printf("Warning: finalization mail skipped, submitter %d not found: %v", item.SubmitterID, err)
		return
	}
	subject := fmt.Sprintf("Review outcome: %s", item.Title)
	body := fmt.Sprintf("<p>The review of <strong>%s</strong> is complete.</p><p>Outcome: <strong>%s</strong></p>",
		item.Title, final.Label())
	if err := config.SendMail([]string{submitter.Email}, subject, body); err != nil {
		log.Printf("Warning: failed to send finalization mail: %v", err)
	}
}

func attachItemRef(notification *models.Notification, item *models.SubmittedItem) {
	itemRef := uint(item.ID)
	if item.Kind == models.ItemKindPaper {
		notification.RelatedPaperID = &itemRef
	} else {
		notification.RelatedProposalID = &itemRef
	}
}
