package controllers

import (
	"net/http"
	"strconv"

	"review-portal-api/config"
	"review-portal-api/models"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

// CreateReviewAssignments assigns a batch of reviewers to an item.
// POST /admin/items/:kind/:id/assignments
func CreateReviewAssignments(c *gin.Context) {
	kind, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	var req struct {
		ReviewerIDs []int `json:"reviewer_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	svc := services.NewAssignmentService(config.DB)
	assignments, err := svc.CreateAssignments(kind, itemID, req.ReviewerIDs)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Reviewers assigned successfully",
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// GetAdminStatus returns the rollup status of one item for dashboards.
// GET /admin/items/:kind/:id/status
func GetAdminStatus(c *gin.Context) {
	kind, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	rollup, item, err := svc.AdminStatus(kind, itemID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"item":         item,
		"status":       rollup,
		"status_label": rollup.Label(),
		"status_color": rollup.Color(),
	})
}

// GetItemOutcome returns the finalized aggregated outcome of an item.
// GET /admin/items/:kind/:id/outcome
func GetItemOutcome(c *gin.Context) {
	kind, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	_, item, err := svc.AdminStatus(kind, itemID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if item.FinalDecision == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"finalized": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"finalized":      true,
		"decision":       *item.FinalDecision,
		"decision_label": item.FinalDecision.Label(),
		"decision_color": item.FinalDecision.Color(),
		"decided_at":     item.DecidedAt,
	})
}

// ListCandidateReviewers returns the ranked availability listing. The domain
// and exclusion are resolved from an item when kind/id are given, or from an
// explicit domain_id query parameter; with no filters the whole active pool
// is returned, workload-ranked.
// GET /admin/reviewers[?domain_id=1 | ?kind=paper&item_id=7]
func ListCandidateReviewers(c *gin.Context) {
	domainID, excludeUserID, ok := resolveMatchTarget(c)
	if !ok {
		return
	}

	matcher := services.NewReviewerMatcher(config.DB)
	candidates, err := matcher.CandidateReviewers(domainID, excludeUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank reviewers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"reviewers": candidates,
		"total":     len(candidates),
	})
}

// AutoMatchReviewers returns the top recommended reviewers for an item.
// GET /admin/items/:kind/:id/automatch
func AutoMatchReviewers(c *gin.Context) {
	kind, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	svc := services.NewAssignmentService(config.DB)
	_, item, err := svc.AdminStatus(kind, itemID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	matcher := services.NewReviewerMatcher(config.DB)
	candidates, matched, err := matcher.AutoMatch(item.DomainID, item.SubmitterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to auto-match reviewers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"matched":   matched,
		"reviewers": candidates,
		"total":     len(candidates),
	})
}

func resolveMatchTarget(c *gin.Context) (domainID, excludeUserID int, ok bool) {
	kindQuery := c.Query("kind")
	itemQuery := c.Query("item_id")
	if kindQuery != "" && itemQuery != "" {
		kind, err := models.ParseItemKind(kindQuery)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item kind"})
			return 0, 0, false
		}
		itemID, err := strconv.Atoi(itemQuery)
		if err != nil || itemID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
			return 0, 0, false
		}
		svc := services.NewAssignmentService(config.DB)
		_, item, err := svc.AdminStatus(kind, itemID)
		if err != nil {
			respondEngineError(c, err)
			return 0, 0, false
		}
		return item.DomainID, item.SubmitterID, true
	}

	domainQuery := c.Query("domain_id")
	if domainQuery == "" {
		// No filters: list the whole active pool. Domain 0 matches no declared
		// expertise, so ranking degrades to workload order.
		return 0, 0, true
	}
	domainID, err := strconv.Atoi(domainQuery)
	if err != nil || domainID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid domain ID"})
		return 0, 0, false
	}
	return domainID, 0, true
}
