package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid local", "09123456789", "09123456789", false},
		{"with spaces", "  0912 345 6789 ", "09123456789", false},
		{"with dashes", "0912-345-6789", "09123456789", false},
		{"international prefix", "989123456789", "09123456789", false},
		{"international with plus", "+989123456789", "09123456789", false},
		{"too short", "0912345678", "", true},
		{"too long", "091234567890", "", true},
		{"wrong prefix", "08123456789", "", true},
		{"letters only", "notaphone", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePhone(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidCode(t *testing.T) {
	assert.True(t, IsValidCode("123456"))
	assert.True(t, IsValidCode("000000"))
	assert.False(t, IsValidCode("12345"))
	assert.False(t, IsValidCode("1234567"))
	assert.False(t, IsValidCode("12345a"))
	assert.False(t, IsValidCode(""))
	assert.False(t, IsValidCode("12 345"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "&lt;script&gt;", SanitizeInput("<script>"))
	assert.Equal(t, "ab", SanitizeInput("a\x00b"))
}

func TestSanitizeStringArray(t *testing.T) {
	got := SanitizeStringArray([]string{" a ", "<b>"})
	assert.Equal(t, []string{"a", "&lt;b&gt;"}, got)
}
