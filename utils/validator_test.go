package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"reviewer@example.org",
		"first.last+tag@sub.example.co",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@tld",
		"@example.org",
		"user@.org",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("ValidateEmail(%q) = true, want false", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, reason := ValidatePassword("short"); ok || reason == "" {
		t.Errorf("ValidatePassword(short) = %v, %q; want rejection with a reason", ok, reason)
	}
	if ok, reason := ValidatePassword("longenough"); !ok || reason != "" {
		t.Errorf("ValidatePassword(longenough) = %v, %q; want acceptance", ok, reason)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  title\x00 "); got != "title" {
		t.Errorf("SanitizeInput = %q, want %q", got, "title")
	}
}
