package validation

import (
	"strings"
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"a@b.c",
		"weird+tag@sub.domain.io",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"no-at-sign.com",
		"missing@dot",
		"has space@example.com",
		"has@exam ple.com",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePassword_Boundaries(t *testing.T) {
	if ok, _ := ValidatePassword(strings.Repeat("a", 5)); ok {
		t.Error("expected 5-char password to be invalid")
	}
	if ok, _ := ValidatePassword(strings.Repeat("a", 6)); !ok {
		t.Error("expected 6-char password to be valid")
	}
	if ok, _ := ValidatePassword(strings.Repeat("a", 50)); !ok {
		t.Error("expected 50-char password to be valid")
	}
	if ok, _ := ValidatePassword(strings.Repeat("a", 51)); ok {
		t.Error("expected 51-char password to be invalid")
	}
}

func TestValidatePassword_CountsCharactersNotBytes(t *testing.T) {
	// "ααα" is 3 characters but 6 bytes.
	if ok, msg := ValidatePassword("ααα"); ok {
		t.Error("expected 3-char multibyte password to be invalid")
	} else if msg != "Password must be at least 6 characters" {
		t.Errorf("unexpected message: %q", msg)
	}

	if ok, _ := ValidatePassword(strings.Repeat("α", 6)); !ok {
		t.Error("expected 6-char multibyte password to be valid")
	}
	if ok, _ := ValidatePassword(strings.Repeat("α", 50)); !ok {
		t.Error("expected 50-char multibyte password to be valid")
	}
	if ok, _ := ValidatePassword(strings.Repeat("α", 51)); ok {
		t.Error("expected 51-char multibyte password to be invalid")
	}
}

func TestValidatePassword_Messages(t *testing.T) {
	_, msg := ValidatePassword("abc")
	if msg != "Password must be at least 6 characters" {
		t.Errorf("unexpected message: %q", msg)
	}

	_, msg = ValidatePassword(strings.Repeat("a", 60))
	if msg != "Password cannot exceed 50 characters" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestSanitizeString(t *testing.T) {
	got := SanitizeString("  <b>hi</b>  ")
	if got != "bhi/b" {
		t.Errorf("expected %q, got %q", "bhi/b", got)
	}

	if got := SanitizeString("<script>alert(1)</script>"); got != "scriptalert(1)/script" {
		t.Errorf("angle brackets should be stripped, got %q", got)
	}

	if got := SanitizeString("plain text"); got != "plain text" {
		t.Errorf("plain text should pass through, got %q", got)
	}

	if got := SanitizeString("   "); got != "" {
		t.Errorf("whitespace should trim to empty, got %q", got)
	}
}

func TestIsFutureDate(t *testing.T) {
	if !IsFutureDate(time.Now().Add(time.Hour)) {
		t.Error("expected future date to be future")
	}
	if IsFutureDate(time.Now().Add(-time.Hour)) {
		t.Error("expected past date not to be future")
	}
}
