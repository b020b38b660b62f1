package models

import "testing"

func TestIsValidDocumentType(t *testing.T) {
	accepted := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	for _, mimeType := range accepted {
		file := FileUpload{MimeType: mimeType}
		if !file.IsValidDocumentType() {
			t.Errorf("IsValidDocumentType(%q) = false, want true", mimeType)
		}
	}

	rejected := []string{"", "image/png", "application/octet-stream", "text/html"}
	for _, mimeType := range rejected {
		file := FileUpload{MimeType: mimeType}
		if file.IsValidDocumentType() {
			t.Errorf("IsValidDocumentType(%q) = true, want false", mimeType)
		}
	}
}

func TestGetFileSizeInMB(t *testing.T) {
	file := FileUpload{FileSize: 5 * 1024 * 1024}
	if got := file.GetFileSizeInMB(); got != 5 {
		t.Errorf("GetFileSizeInMB = %v, want 5", got)
	}
}
