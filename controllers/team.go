package controllers

import (
	"net/http"
	"strconv"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"
	"review-portal-api/utils"

	"github.com/gin-gonic/gin"
)

// GetTeams lists all teams.
func GetTeams(c *gin.Context) {
	var teams []models.Team
	if err := config.DB.Preload("Owner").Where("delete_at IS NULL").
		Order("team_name").Find(&teams).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teams"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"teams":   teams,
		"total":   len(teams),
	})
}

// GetTeam returns one team with its members.
func GetTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil || teamID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	var team models.Team
	if err := config.DB.Preload("Owner").Preload("Members").
		Where("team_id = ? AND delete_at IS NULL", teamID).
		First(&team).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"team":    team,
	})
}

// CreateTeam registers a new team owned by the acting user.
func CreateTeam(c *gin.Context) {
	var req struct {
		TeamName    string `json:"team_name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	team := models.Team{
		TeamName:    utils.SanitizeInput(req.TeamName),
		Description: utils.SanitizeInput(req.Description),
		OwnerID:     userID,
		CreateAt:    time.Now(),
	}
	if err := config.DB.Create(&team).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Team created successfully",
		"team":    team,
	})
}

// JoinTeam sets the acting user's team.
func JoinTeam(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil || teamID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var team models.Team
	if err := config.DB.Where("team_id = ? AND delete_at IS NULL", teamID).
		First(&team).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"team_id": teamID, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Joined team successfully",
	})
}
