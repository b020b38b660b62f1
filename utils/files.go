package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UserFolder ensures the per-user upload directory exists and returns it.
func UserFolder(userID int, uploadPath string) (string, error) {
	folder := filepath.Join(uploadPath, fmt.Sprintf("user_%d", userID))
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return "", err
	}
	return folder, nil
}

// StoredFilename builds a collision-free stored name that keeps the original
// extension.
func StoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}
