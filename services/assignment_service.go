package services

import (
	"errors"
	"log"
	"time"

	"review-portal-api/models"

	"gorm.io/gorm"
)

const (
	// MinReviewersPerItem is the hard minimum batch size for an assignment.
	MinReviewersPerItem = 3

	// ReviewPeriod is the window reviewers get, fixed at batch creation.
	ReviewPeriod = 14 * 24 * time.Hour
)

// DecisionInput is the payload of one reviewer's submitted decision.
type DecisionInput struct {
	Verdict           string  `json:"verdict"`
	ScoreNovelty      float64 `json:"score_novelty"`
	ScoreRigor        float64 `json:"score_rigor"`
	ScoreClarity      float64 `json:"score_clarity"`
	ScoreSignificance float64 `json:"score_significance"`
	ScorePresentation float64 `json:"score_presentation"`
	Feedback          string  `json:"feedback"`
	AttachmentFileID  *int    `json:"attachment_file_id"`
}

// AssignmentService is the assignment lifecycle manager: it validates and
// creates assignment batches, applies per-assignment status transitions, and
// finalizes an item once the rollup reports completion.
type AssignmentService struct {
	store    ReviewStore
	notifier *NotificationService
	now      func() time.Time
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{
		store:    NewGormReviewStore(db),
		notifier: NewNotificationService(db),
		now:      time.Now,
	}
}

// NewAssignmentServiceWithStore wires a custom store; used by tests.
func NewAssignmentServiceWithStore(store ReviewStore, now func() time.Time) *AssignmentService {
	if now == nil {
		now = time.Now
	}
	return &AssignmentService{store: store, now: now}
}

// CreateAssignments creates one assignment per reviewer for the item, all
// sharing a due date of now+ReviewPeriod, and flips the item to under_review.
// The whole batch is atomic: either every assignment exists and the item
// state flipped, or nothing was written.
func (s *AssignmentService) CreateAssignments(kind models.ItemKind, itemID int, reviewerIDs []int) ([]models.ReviewAssignment, error) {
	if len(reviewerIDs) < MinReviewersPerItem {
		return nil, validationError("min_reviewers",
			"at least %d reviewers are required, got %d", MinReviewersPerItem, len(reviewerIDs))
	}

	seen := make(map[int]bool, len(reviewerIDs))
	for _, id := range reviewerIDs {
		if seen[id] {
			return nil, validationError("duplicate_reviewer", "reviewer %d listed more than once", id)
		}
		seen[id] = true
	}

	item, err := s.store.FindItem(kind, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("item_not_found", "%s %d not found", kind, itemID)
		}
		return nil, err
	}
	if item.Status != models.ItemPending {
		return nil, preconditionError("item_not_pending",
			"%s %d is %s, assignments can only be created while it awaits assignment", kind, itemID, item.Status)
	}

	reviewers, err := s.store.FindReviewers(reviewerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.User, len(reviewers))
	for _, reviewer := range reviewers {
		byID[reviewer.UserID] = reviewer
	}
	for _, id := range reviewerIDs {
		reviewer, ok := byID[id]
		if !ok {
			return nil, notFoundError("reviewer_not_found", "reviewer %d not found", id)
		}
		if !reviewer.CanReview() {
			return nil, validationError("reviewer_not_active",
				"reviewer %d is %s and cannot receive assignments", id, reviewer.ReviewerState)
		}
		if reviewer.UserID == item.SubmitterID {
			return nil, validationError("self_review", "reviewer %d submitted this item", id)
		}
	}

	now := s.now()
	due := now.Add(ReviewPeriod)
	assignments := make([]models.ReviewAssignment, 0, len(reviewerIDs))
	for _, id := range reviewerIDs {
		assignment := models.ReviewAssignment{
			ReviewerID: id,
			Status:     models.AssignmentPending,
			AssignedAt: now,
			DueAt:      due,
			CreateAt:   now,
		}
		if kind == models.ItemKindPaper {
			itemRef := itemID
			assignment.PaperID = &itemRef
		} else {
			itemRef := itemID
			assignment.ProposalID = &itemRef
		}
		assignments = append(assignments, assignment)
	}

	if err := s.store.CreateAssignmentBatch(item, assignments); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.AssignmentsCreated(item, assignments, reviewers)
	}
	return assignments, nil
}

// TransitionAssignment applies one forward status transition on behalf of the
// acting reviewer, then re-evaluates the item. The returned status is the
// item's rollup after the transition.
func (s *AssignmentService) TransitionAssignment(assignmentID int, newStatus models.AssignmentStatus, actingReviewerID int) (*models.ReviewAssignment, models.AssignmentStatus, error) {
	if !newStatus.Settable() {
		return nil, "", validationError("derived_status",
			"%s is a derived rollup label and cannot be set on an assignment", newStatus)
	}
	if newStatus == models.AssignmentPending {
		return nil, "", validationError("invalid_target", "assignments cannot be reset to pending")
	}

	assignment, err := s.store.FindAssignment(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", notFoundError("assignment_not_found", "assignment %d not found", assignmentID)
		}
		return nil, "", err
	}

	if assignment.ReviewerID != actingReviewerID {
		return nil, "", authorizationError("not_assignee",
			"assignment %d belongs to another reviewer", assignmentID)
	}
	if assignment.Status == models.AssignmentCompleted {
		return nil, "", preconditionError("terminal_status",
			"assignment %d is completed and cannot change", assignmentID)
	}
	if newStatus.Rank() < assignment.Status.Rank() {
		return nil, "", preconditionError("backward_transition",
			"assignment %d cannot move from %s back to %s", assignmentID, assignment.Status, newStatus)
	}

	now := s.now()
	switch newStatus {
	case models.AssignmentInProgress:
		if assignment.StartedAt == nil {
			assignment.StartedAt = &now
		}
	case models.AssignmentCompleted:
		if _, err := s.store.DecisionForAssignment(assignmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", preconditionError("decision_required",
					"assignment %d has no submitted review decision", assignmentID)
			}
			return nil, "", err
		}
		if assignment.StartedAt == nil {
			assignment.StartedAt = &now
		}
		assignment.CompletedAt = &now
	}
	assignment.Status = newStatus

	if err := s.store.UpdateAssignment(assignment); err != nil {
		return nil, "", err
	}

	rollup, err := s.Finalize(assignment.ItemKind(), assignment.ItemID())
	if err != nil {
		return nil, "", err
	}
	return assignment, rollup, nil
}

// SubmitDecision records the reviewer's verdict for an assignment and then
// completes the assignment. Decisions are written once and never updated.
func (s *AssignmentService) SubmitDecision(assignmentID int, input DecisionInput, actingReviewerID int) (*models.ReviewDecision, models.AssignmentStatus, error) {
	verdict, err := models.ParseDecisionValue(input.Verdict)
	if err != nil {
		return nil, "", validationError("unknown_verdict", "%v", err)
	}
	for _, score := range []float64{
		input.ScoreNovelty, input.ScoreRigor, input.ScoreClarity,
		input.ScoreSignificance, input.ScorePresentation,
	} {
		if score < 0 || score > 10 {
			return nil, "", validationError("score_out_of_range",
				"rubric scores must be between 0 and 10, got %.1f", score)
		}
	}

	assignment, err := s.store.FindAssignment(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", notFoundError("assignment_not_found", "assignment %d not found", assignmentID)
		}
		return nil, "", err
	}
	if assignment.ReviewerID != actingReviewerID {
		return nil, "", authorizationError("not_assignee",
			"assignment %d belongs to another reviewer", assignmentID)
	}
	if assignment.Status == models.AssignmentCompleted {
		return nil, "", preconditionError("terminal_status",
			"assignment %d is already completed", assignmentID)
	}
	if _, err := s.store.DecisionForAssignment(assignmentID); err == nil {
		return nil, "", preconditionError("decision_exists",
			"assignment %d already has a decision", assignmentID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	decision := models.ReviewDecision{
		AssignmentID:      assignmentID,
		ReviewerID:        actingReviewerID,
		PaperID:           assignment.PaperID,
		ProposalID:        assignment.ProposalID,
		Verdict:           verdict,
		ScoreNovelty:      input.ScoreNovelty,
		ScoreRigor:        input.ScoreRigor,
		ScoreClarity:      input.ScoreClarity,
		ScoreSignificance: input.ScoreSignificance,
		ScorePresentation: input.ScorePresentation,
		Feedback:          input.Feedback,
		AttachmentFileID:  input.AttachmentFileID,
		CreatedAt:         s.now(),
	}
	decision.OverallScore = decision.ComputeOverall()

	if err := s.store.CreateDecision(&decision); err != nil {
		return nil, "", err
	}

	_, rollup, err := s.TransitionAssignment(assignmentID, models.AssignmentCompleted, actingReviewerID)
	if err != nil {
		return nil, "", err
	}
	return &decision, rollup, nil
}

// Finalize re-evaluates the item and, when the rollup reports completion,
// aggregates the decisions and persists the outcome. Idempotent: an already
// finalized item is left untouched, and the conditional write guarantees at
// most one successful finalize per item even under concurrent completion.
func (s *AssignmentService) Finalize(kind models.ItemKind, itemID int) (models.AssignmentStatus, error) {
	item, err := s.store.FindItem(kind, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFoundError("item_not_found", "%s %d not found", kind, itemID)
		}
		return "", err
	}

	assignments, err := s.store.AssignmentsForItem(kind, itemID)
	if err != nil {
		return "", err
	}
	rollup := AggregateAssignmentStatus(assignments, s.now())
	if rollup != models.AssignmentCompleted {
		return rollup, nil
	}
	if item.Status == models.ItemCompleted && item.FinalDecision != nil {
		return rollup, nil
	}

	decisions, err := s.store.DecisionsForItem(kind, itemID)
	if err != nil {
		return "", err
	}
	values := make([]models.DecisionValue, 0, len(decisions))
	for _, decision := range decisions {
		values = append(values, decision.Verdict)
	}
	final, ok := AggregateDecisions(values)
	if !ok {
		return rollup, nil
	}

	wrote, err := s.store.FinalizeItem(kind, itemID, final, s.now())
	if err != nil {
		return "", err
	}
	if !wrote {
		// Lost the conditional update. Re-read once: a finalized item means
		// another writer won, which counts as success.
		fresh, err := s.store.FindItem(kind, itemID)
		if err != nil {
			return "", err
		}
		if fresh.Status == models.ItemCompleted && fresh.FinalDecision != nil {
			return rollup, nil
		}
		if _, err := s.store.FinalizeItem(kind, itemID, final, s.now()); err != nil {
			return "", err
		}
	}

	if s.notifier != nil {
		s.notifier.ItemFinalized(item, final)
	} else {
		log.Printf("finalized %s %d: %s", kind, itemID, final)
	}
	return rollup, nil
}

// AdminStatus is the read-only rollup for dashboards.
func (s *AssignmentService) AdminStatus(kind models.ItemKind, itemID int) (models.AssignmentStatus, *models.SubmittedItem, error) {
	item, err := s.store.FindItem(kind, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, notFoundError("item_not_found", "%s %d not found", kind, itemID)
		}
		return "", nil, err
	}
	assignments, err := s.store.AssignmentsForItem(kind, itemID)
	if err != nil {
		return "", nil, err
	}
	return AggregateAssignmentStatus(assignments, s.now()), item, nil
}
