package controllers

import (
	"net/http"
	"strconv"

	"review-portal-api/config"
	"review-portal-api/models"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

// GetMyAssignments lists the acting reviewer's assignments.
// GET /reviews/assignments?status=pending
func GetMyAssignments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Paper").Preload("Proposal").Preload("Decision").
		Where("reviewer_id = ?", userID)

	if statusQuery := c.Query("status"); statusQuery != "" {
		status, err := models.ParseAssignmentStatus(statusQuery)
		if err != nil || !status.Settable() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var assignments []models.ReviewAssignment
	if err := query.Order("due_at ASC, assignment_id ASC").Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// UpdateAssignmentStatus applies a status transition on the reviewer's own
// assignment.
// PUT /reviews/assignments/:id/status
func UpdateAssignmentStatus(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	newStatus, err := models.ParseAssignmentStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	assignment, rollup, err := svc.TransitionAssignment(assignmentID, newStatus, userID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"assignment":   assignment,
		"item_status":  rollup,
		"status_label": assignment.Status.Label(),
	})
}

// SubmitDecision records the reviewer's verdict and completes the assignment.
// POST /reviews/assignments/:id/decision
func SubmitDecision(c *gin.Context) {
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	var input services.DecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	decision, rollup, err := svc.SubmitDecision(assignmentID, input, userID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Review decision submitted",
		"decision":    decision,
		"item_status": rollup,
	})
}
