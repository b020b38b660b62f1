package services

import (
	"fmt"
	"time"

	"review-portal-api/models"

	"gorm.io/gorm"
)

// ReviewStore is the persistence boundary of the assignment lifecycle
// manager. Lookups report missing rows with gorm.ErrRecordNotFound.
type ReviewStore interface {
	FindItem(kind models.ItemKind, id int) (*models.SubmittedItem, error)
	FindReviewers(ids []int) ([]models.User, error)
	FindAssignment(id int) (*models.ReviewAssignment, error)
	AssignmentsForItem(kind models.ItemKind, id int) ([]models.ReviewAssignment, error)
	DecisionsForItem(kind models.ItemKind, id int) ([]models.ReviewDecision, error)
	DecisionForAssignment(assignmentID int) (*models.ReviewDecision, error)

	// CreateAssignmentBatch persists the whole batch and flips the item to
	// under_review in one transaction; partial batches are never a valid end
	// state.
	CreateAssignmentBatch(item *models.SubmittedItem, assignments []models.ReviewAssignment) error

	UpdateAssignment(assignment *models.ReviewAssignment) error
	CreateDecision(decision *models.ReviewDecision) error

	// FinalizeItem conditionally writes the aggregated outcome: the update
	// only applies while the item is not yet completed and carries no final
	// decision. Returns false when another writer already finalized.
	FinalizeItem(kind models.ItemKind, id int, decision models.DecisionValue, decidedAt time.Time) (bool, error)
}

type gormReviewStore struct {
	db *gorm.DB
}

// NewGormReviewStore returns the MySQL-backed store used in production.
func NewGormReviewStore(db *gorm.DB) ReviewStore {
	return &gormReviewStore{db: db}
}

func (s *gormReviewStore) FindItem(kind models.ItemKind, id int) (*models.SubmittedItem, error) {
	switch kind {
	case models.ItemKindPaper:
		var paper models.Paper
		if err := s.db.Where("paper_id = ? AND delete_at IS NULL", id).First(&paper).Error; err != nil {
			return nil, err
		}
		item := paper.Item()
		return &item, nil
	case models.ItemKindProposal:
		var proposal models.Proposal
		if err := s.db.Where("proposal_id = ? AND delete_at IS NULL", id).First(&proposal).Error; err != nil {
			return nil, err
		}
		item := proposal.Item()
		return &item, nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
}

func (s *gormReviewStore) FindReviewers(ids []int) ([]models.User, error) {
	var reviewers []models.User
	if err := s.db.Preload("Expertise").
		Where("user_id IN ? AND delete_at IS NULL", ids).
		Find(&reviewers).Error; err != nil {
		return nil, err
	}
	return reviewers, nil
}

func (s *gormReviewStore) FindAssignment(id int) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	if err := s.db.Where("assignment_id = ?", id).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *gormReviewStore) AssignmentsForItem(kind models.ItemKind, id int) ([]models.ReviewAssignment, error) {
	var assignments []models.ReviewAssignment
	query := s.db.Order("assignment_id")
	if kind == models.ItemKindPaper {
		query = query.Where("paper_id = ?", id)
	} else {
		query = query.Where("proposal_id = ?", id)
	}
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (s *gormReviewStore) DecisionsForItem(kind models.ItemKind, id int) ([]models.ReviewDecision, error) {
	var decisions []models.ReviewDecision
	query := s.db.Order("decision_id")
	if kind == models.ItemKindPaper {
		query = query.Where("paper_id = ?", id)
	} else {
		query = query.Where("proposal_id = ?", id)
	}
	if err := query.Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

func (s *gormReviewStore) DecisionForAssignment(assignmentID int) (*models.ReviewDecision, error) {
	var decision models.ReviewDecision
	if err := s.db.Where("assignment_id = ?", assignmentID).First(&decision).Error; err != nil {
		return nil, err
	}
	return &decision, nil
}

func (s *gormReviewStore) CreateAssignmentBatch(item *models.SubmittedItem, assignments []models.ReviewAssignment) error {
	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range assignments {
			if err := tx.Create(&assignments[i]).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"status":    models.ItemUnderReview,
			"update_at": now,
		}
		var result *gorm.DB
		if item.Kind == models.ItemKindPaper {
			result = tx.Model(&models.Paper{}).
				Where("paper_id = ? AND status = ?", item.ID, models.ItemPending).
				Updates(updates)
		} else {
			result = tx.Model(&models.Proposal{}).
				Where("proposal_id = ? AND status = ?", item.ID, models.ItemPending).
				Updates(updates)
		}
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%s %d is no longer awaiting assignment", item.Kind, item.ID)
		}
		return nil
	})
}

func (s *gormReviewStore) UpdateAssignment(assignment *models.ReviewAssignment) error {
	now := time.Now()
	assignment.UpdateAt = &now
	return s.db.Save(assignment).Error
}

func (s *gormReviewStore) CreateDecision(decision *models.ReviewDecision) error {
	return s.db.Create(decision).Error
}

func (s *gormReviewStore) FinalizeItem(kind models.ItemKind, id int, decision models.DecisionValue, decidedAt time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":         models.ItemCompleted,
		"final_decision": decision,
		"decided_at":     decidedAt,
		"update_at":      decidedAt,
	}
	var result *gorm.DB
	if kind == models.ItemKindPaper {
		result = s.db.Model(&models.Paper{}).
			Where("paper_id = ? AND status <> ? AND final_decision IS NULL", id, models.ItemCompleted).
			Updates(updates)
	} else {
		result = s.db.Model(&models.Proposal{}).
			Where("proposal_id = ? AND status <> ? AND final_decision IS NULL", id, models.ItemCompleted).
			Updates(updates)
	}
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
