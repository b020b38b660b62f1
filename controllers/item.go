package controllers

import (
	"net/http"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"
	"review-portal-api/utils"

	"github.com/gin-gonic/gin"
)

type itemRequest struct {
	Title    string `json:"title" binding:"required"`
	Abstract string `json:"abstract"`
	DomainID int    `json:"domain_id" binding:"required"`
	TeamID   *int   `json:"team_id"`
}

// CreateItem registers a new paper or proposal for the acting user. The item
// starts in pending and enters review once an admin assigns reviewers.
// POST /items/:kind
func CreateItem(c *gin.Context) {
	kind, err := models.ParseItemKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item kind"})
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var domain models.Domain
	if err := config.DB.Where("domain_id = ? AND delete_at IS NULL", req.DomainID).
		First(&domain).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown domain"})
		return
	}

	now := time.Now()
	title := utils.SanitizeInput(req.Title)
	abstract := utils.SanitizeInput(req.Abstract)

	if kind == models.ItemKindPaper {
		paper := models.Paper{
			Title:       title,
			Abstract:    abstract,
			DomainID:    req.DomainID,
			TeamID:      req.TeamID,
			SubmitterID: userID,
			Status:      models.ItemPending,
			SubmittedAt: &now,
			CreateAt:    now,
		}
		if err := config.DB.Create(&paper).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create paper"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "paper": paper})
		return
	}

	proposal := models.Proposal{
		Title:       title,
		Abstract:    abstract,
		DomainID:    req.DomainID,
		TeamID:      req.TeamID,
		SubmitterID: userID,
		Status:      models.ItemPending,
		SubmittedAt: &now,
		CreateAt:    now,
	}
	if err := config.DB.Create(&proposal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create proposal"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "proposal": proposal})
}

// GetItems lists items of one kind. Members see their own; admins see all.
// GET /items/:kind
func GetItems(c *gin.Context) {
	kind, err := models.ParseItemKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item kind"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	isAdmin := currentRoleID(c) == models.RoleAdmin

	if kind == models.ItemKindPaper {
		query := config.DB.Preload("Domain").Preload("Team").Where("delete_at IS NULL")
		if !isAdmin {
			query = query.Where("submitter_id = ?", userID)
		}
		var papers []models.Paper
		if err := query.Order("submitted_at DESC").Find(&papers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "papers": papers, "total": len(papers)})
		return
	}

	query := config.DB.Preload("Domain").Preload("Team").Where("delete_at IS NULL")
	if !isAdmin {
		query = query.Where("submitter_id = ?", userID)
	}
	var proposals []models.Proposal
	if err := query.Order("submitted_at DESC").Find(&proposals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch proposals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "proposals": proposals, "total": len(proposals)})
}

// GetItem returns one item with its workflow state and, once finalized, the
// aggregated outcome labels.
// GET /items/:kind/:id
func GetItem(c *gin.Context) {
	kind, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	isAdmin := currentRoleID(c) == models.RoleAdmin

	var item models.SubmittedItem
	if kind == models.ItemKindPaper {
		var paper models.Paper
		if err := config.DB.Preload("Domain").Preload("Team").Preload("Submitter").Preload("File").
			Where("paper_id = ? AND delete_at IS NULL", itemID).First(&paper).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return
		}
		item = paper.Item()
		if !isAdmin && paper.SubmitterID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		respondItem(c, gin.H{"paper": paper}, item)
		return
	}

	var proposal models.Proposal
	if err := config.DB.Preload("Domain").Preload("Team").Preload("Submitter").Preload("File").
		Where("proposal_id = ? AND delete_at IS NULL", itemID).First(&proposal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return
	}
	item = proposal.Item()
	if !isAdmin && proposal.SubmitterID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	respondItem(c, gin.H{"proposal": proposal}, item)
}

func respondItem(c *gin.Context, body gin.H, item models.SubmittedItem) {
	body["success"] = true
	body["status_label"] = item.Status.Label()
	body["status_color"] = item.Status.Color()
	if item.FinalDecision != nil {
		body["decision_label"] = item.FinalDecision.Label()
		body["decision_color"] = item.FinalDecision.Color()
	}
	c.JSON(http.StatusOK, body)
}

// GetDomains lists the research domain tags.
// GET /domains
func GetDomains(c *gin.Context) {
	var domains []models.Domain
	if err := config.DB.Where("delete_at IS NULL").Order("domain_name").Find(&domains).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch domains"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "domains": domains})
}
