package controllers

import (
	"net/http"
	"strconv"

	"review-portal-api/models"
	"review-portal-api/services"

	"github.com/gin-gonic/gin"
)

// respondEngineError maps the engine error taxonomy onto HTTP status codes.
// The rule name is included so the frontend can present a precise message.
func respondEngineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.ErrKindValidation:
		status = http.StatusBadRequest
	case services.ErrKindAuthorization:
		status = http.StatusForbidden
	case services.ErrKindPrecondition:
		status = http.StatusUnprocessableEntity
	case services.ErrKindConflict:
		status = http.StatusConflict
	case services.ErrKindNotFound:
		status = http.StatusNotFound
	}

	body := gin.H{"error": err.Error()}
	if rule := services.RuleOf(err); rule != "" {
		body["rule"] = rule
	}
	c.JSON(status, body)
}

func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return 0, false
	}
	userID, ok := value.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return 0, false
	}
	return userID, true
}

func currentRoleID(c *gin.Context) int {
	value, exists := c.Get("roleID")
	if !exists {
		return 0
	}
	roleID, _ := value.(int)
	return roleID
}

// itemParams parses the :kind/:id pair shared by the item-scoped routes.
func itemParams(c *gin.Context) (models.ItemKind, int, bool) {
	kind, err := models.ParseItemKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item kind"})
		return "", 0, false
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return "", 0, false
	}
	return kind, id, true
}
