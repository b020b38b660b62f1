package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"
	"review-portal-api/utils"

	"github.com/gin-gonic/gin"
)

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// UploadItemDocument attaches the manuscript PDF to a pending item owned by
// the acting user.
// POST /items/:kind/:id/document
func UploadItemDocument(c *gin.Context) {
	kind, itemID, ok := itemParams(c)
	if !ok {
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	item, ok := loadOwnedPendingItem(c, kind, itemID, userID)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	maxSize := int64(20 * 1024 * 1024) // 20MB
	if file.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 20MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	now := time.Now()
	fileUpload := models.FileUpload{
		OriginalName: file.Filename,
		FileSize:     file.Size,
		MimeType:     file.Header.Get("Content-Type"),
		IsPublic:     false,
		UploadedBy:   userID,
		UploadedAt:   now,
		CreateAt:     now,
		UpdateAt:     now,
	}
	if !fileUpload.IsValidDocumentType() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	userFolder, err := utils.UserFolder(userID, uploadPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user directory"})
		return
	}

	storedName := utils.StoredFilename(file.Filename)
	fullPath := filepath.Join(userFolder, storedName)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	fileUpload.StoredPath = fullPath
	if err := config.DB.Create(&fileUpload).Error; err != nil {
		os.Remove(fullPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file info"})
		return
	}

	if err := linkItemFile(kind, item.ID, fileUpload.FileID, now); err != nil {
		os.Remove(fullPath)
		config.DB.Delete(&fileUpload)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "File uploaded successfully",
		"file":    fileUpload,
	})
}

// DownloadDocument streams a stored file. Reviewers assigned to the item, the
// submitter, and admins may download.
// GET /documents/:file_id
func DownloadDocument(c *gin.Context) {
	fileID, err := strconv.Atoi(c.Param("file_id"))
	if err != nil || fileID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file ID"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var fileUpload models.FileUpload
	if err := config.DB.Where("file_id = ? AND delete_at IS NULL", fileID).
		First(&fileUpload).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	if !canAccessFile(&fileUpload, userID, currentRoleID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if _, err := os.Stat(fileUpload.StoredPath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileUpload.OriginalName))
	c.Header("Content-Type", "application/octet-stream")
	c.File(fileUpload.StoredPath)
}

func loadOwnedPendingItem(c *gin.Context, kind models.ItemKind, itemID, userID int) (*models.SubmittedItem, bool) {
	var item models.SubmittedItem
	if kind == models.ItemKindPaper {
		var paper models.Paper
		if err := config.DB.Where("paper_id = ? AND submitter_id = ? AND delete_at IS NULL",
			itemID, userID).First(&paper).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
			return nil, false
		}
		item = paper.Item()
	} else {
		var proposal models.Proposal
		if err := config.DB.Where("proposal_id = ? AND submitter_id = ? AND delete_at IS NULL",
			itemID, userID).First(&proposal).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
			return nil, false
		}
		item = proposal.Item()
	}

	if item.Status != models.ItemPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot replace documents once review has started"})
		return nil, false
	}
	return &item, true
}

func linkItemFile(kind models.ItemKind, itemID, fileID int, now time.Time) error {
	updates := map[string]interface{}{"file_id": fileID, "update_at": now}
	if kind == models.ItemKindPaper {
		return config.DB.Model(&models.Paper{}).Where("paper_id = ?", itemID).Updates(updates).Error
	}
	return config.DB.Model(&models.Proposal{}).Where("proposal_id = ?", itemID).Updates(updates).Error
}

// canAccessFile allows the uploader, admins, and reviewers holding an
// assignment on an item the file is attached to.
func canAccessFile(file *models.FileUpload, userID, roleID int) bool {
	if roleID == models.RoleAdmin || file.UploadedBy == userID {
		return true
	}

	var count int64
	config.DB.Model(&models.ReviewAssignment{}).
		Joins("LEFT JOIN papers ON papers.paper_id = review_assignments.paper_id").
		Joins("LEFT JOIN proposals ON proposals.proposal_id = review_assignments.proposal_id").
		Where("review_assignments.reviewer_id = ?", userID).
		Where("papers.file_id = ? OR proposals.file_id = ?", file.FileID, file.FileID).
		Count(&count)
	return count > 0
}
