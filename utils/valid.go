// utils/valid.go
package utils

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	// Local mobile numbers: 11 digits starting with 09.
	mobileRegex = regexp.MustCompile(`^09\d{9}$`)

	// Verification codes are exactly 6 numeric digits.
	codeRegex = regexp.MustCompile(`^\d{6}$`)
)

// SanitizeInput sanitizes user input to prevent XSS and injection attacks
func SanitizeInput(input string) string {
	// Trim spaces
	input = strings.TrimSpace(input)

	// HTML escape
	input = html.EscapeString(input)

	// Remove control characters
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	return input
}

// SanitizePhone sanitizes and validates a local mobile number
func SanitizePhone(phone string) (string, error) {
	// Remove all non-numeric characters
	phone = regexp.MustCompile(`\D`).ReplaceAllString(strings.TrimSpace(phone), "")

	// Accept the international prefix form and normalize it back to local
	if strings.HasPrefix(phone, "98") && len(phone) == 12 {
		phone = "0" + phone[2:]
	}

	if !mobileRegex.MatchString(phone) {
		return "", errors.New("invalid phone number format")
	}

	return phone, nil
}

// IsValidCode reports whether code is exactly 6 numeric digits.
func IsValidCode(code string) bool {
	return codeRegex.MatchString(code)
}

// SanitizeStringArray sanitizes an array of strings
func SanitizeStringArray(inputs []string) []string {
	sanitized := make([]string, len(inputs))
	for i, input := range inputs {
		sanitized[i] = SanitizeInput(input)
	}
	return sanitized
}
