package services

import (
	"log"
	"time"

	"review-portal-api/models"
)

// AggregateAssignmentStatus computes the administrative rollup status of one
// submitted item from its assignments. The rollup favors optimism before the
// deadline (only full on-time completion counts as done) and tolerates
// partial completion after it (majority completion still counts as done).
//
// Overdue exists only as a value of this function; it is never stored on an
// assignment row.
func AggregateAssignmentStatus(assignments []models.ReviewAssignment, now time.Time) models.AssignmentStatus {
	if len(assignments) == 0 {
		return models.AssignmentPending
	}

	// The batch shares one due date; taking the max guards against drifted
	// rows.
	due := assignments[0].DueAt
	for _, assignment := range assignments[1:] {
		if assignment.DueAt.After(due) {
			due = assignment.DueAt
		}
	}

	var completed, completedOnTime, inProgress, notStarted int
	for _, assignment := range assignments {
		switch assignment.Status {
		case models.AssignmentCompleted:
			completed++
			if assignment.CompletedAt != nil && !assignment.CompletedAt.After(due) {
				completedOnTime++
			}
		case models.AssignmentInProgress:
			inProgress++
		case models.AssignmentPending:
			notStarted++
		}
	}

	total := len(assignments)
	if completedOnTime == total {
		return models.AssignmentCompleted
	}

	if !now.After(due) {
		switch {
		case notStarted > 0:
			return models.AssignmentPending
		case inProgress > 0:
			return models.AssignmentInProgress
		}
		// Reachable only when assignment rows were deleted or corrupted
		// mid-review; surfaced for the consistency check, not a business rule.
		log.Printf("status rollup: inconsistent assignment set (%d rows, %d completed, none pending or in progress)", total, completed)
		if completed > 0 {
			return models.AssignmentInProgress
		}
		return models.AssignmentPending
	}

	if float64(completedOnTime)/float64(total) > 0.5 {
		return models.AssignmentCompleted
	}
	return models.AssignmentOverdue
}
