package controllers

import (
	"net/http"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns counts for the admin dashboard: items per
// workflow state, assignments per status, and the rollup distribution of
// everything currently under review.
func GetDashboardStats(c *gin.Context) {
	itemCounts := map[string]int64{}
	for _, status := range []models.ItemStatus{models.ItemPending, models.ItemUnderReview, models.ItemCompleted} {
		var papers, proposals int64
		config.DB.Model(&models.Paper{}).
			Where("status = ? AND delete_at IS NULL", status).Count(&papers)
		config.DB.Model(&models.Proposal{}).
			Where("status = ? AND delete_at IS NULL", status).Count(&proposals)
		itemCounts[string(status)] = papers + proposals
	}

	assignmentCounts := map[string]int64{}
	for _, status := range []models.AssignmentStatus{models.AssignmentPending, models.AssignmentInProgress, models.AssignmentCompleted} {
		var count int64
		config.DB.Model(&models.ReviewAssignment{}).
			Where("status = ?", status).Count(&count)
		assignmentCounts[string(status)] = count
	}

	rollups, err := underReviewRollups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rollups"})
		return
	}

	var decisions int64
	config.DB.Model(&models.ReviewDecision{}).Count(&decisions)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"items":       itemCounts,
		"assignments": assignmentCounts,
		"rollups":     rollups,
		"decisions":   decisions,
	})
}

// underReviewRollups recomputes the derived admin status for every item
// currently under review; overdue only exists here, never in storage.
func underReviewRollups() (map[string]int, error) {
	now := time.Now()
	rollups := map[string]int{}

	var papers []models.Paper
	if err := config.DB.Where("status = ? AND delete_at IS NULL", models.ItemUnderReview).
		Find(&papers).Error; err != nil {
		return nil, err
	}
	var proposals []models.Proposal
	if err := config.DB.Where("status = ? AND delete_at IS NULL", models.ItemUnderReview).
		Find(&proposals).Error; err != nil {
		return nil, err
	}

	store := services.NewGormReviewStore(config.DB)
	for _, paper := range papers {
		assignments, err := store.AssignmentsForItem(models.ItemKindPaper, paper.PaperID)
		if err != nil {
			return nil, err
		}
		rollup := services.AggregateAssignmentStatus(assignments, now)
		rollups[string(rollup)]++
	}
	for _, proposal := range proposals {
		assignments, err := store.AssignmentsForItem(models.ItemKindProposal, proposal.ProposalID)
		if err != nil {
			return nil, err
		}
		rollup := services.AggregateAssignmentStatus(assignments, now)
		rollups[string(rollup)]++
	}
	return rollups, nil
}
