package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendCodeRejectsInvalidPhone(t *testing.T) {
	vc := NewVerificationController(newTestClient(t))

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"phone":`},
		{"missing phone", `{}`},
		{"too short", `{"phone":"0912345678"}`},
		{"wrong prefix", `{"phone":"08123456789"}`},
		{"letters", `{"phone":"notaphone"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/verification/send", tt.body)
			assert.NoError(t, vc.SendCode(c))
			requireStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestConfirmCodeRejectsMalformedCode(t *testing.T) {
	vc := NewVerificationController(newTestClient(t))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"too short", `{"phone":"09123456789","code":"12345"}`, "Code must be 6 digits"},
		{"too long", `{"phone":"09123456789","code":"1234567"}`, "Code must be 6 digits"},
		{"non numeric", `{"phone":"09123456789","code":"12a456"}`, "Code must be 6 digits"},
		{"empty", `{"phone":"09123456789","code":""}`, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/verification/confirm", tt.body)
			assert.NoError(t, vc.ConfirmCode(c))
			resp := requireStatus(t, rec, http.StatusBadRequest)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestConfirmCodeRejectsInvalidPhone(t *testing.T) {
	vc := NewVerificationController(newTestClient(t))

	c, rec := newJSONContext(t, http.MethodPost, "/api/verification/confirm",
		`{"phone":"12345","code":"123456"}`)
	assert.NoError(t, vc.ConfirmCode(c))
	requireStatus(t, rec, http.StatusBadRequest)
}
