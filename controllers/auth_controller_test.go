package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterValidation(t *testing.T) {
	ac := NewAuthController(newTestClient(t))

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"malformed json",
			`{"phone":`,
			"Invalid request body",
		},
		{
			"invalid phone",
			`{"phone":"12345","password":"longenough","storeId":"shop1"}`,
			"Invalid phone number format",
		},
		{
			"short password",
			`{"phone":"09123456789","password":"short","storeId":"shop1"}`,
			"Validation failed",
		},
		{
			"missing store id",
			`{"phone":"09123456789","password":"longenough"}`,
			"Validation failed",
		},
		{
			"missing password",
			`{"phone":"09123456789","storeId":"shop1"}`,
			"Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register", tt.body)
			assert.NoError(t, ac.Register(c))
			resp := requireStatus(t, rec, http.StatusBadRequest)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	ac := NewAuthController(newTestClient(t))

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"phone":`},
		{"invalid phone", `{"phone":"12345","password":"whatever"}`},
		{"empty password", `{"phone":"09123456789","password":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/auth/login", tt.body)
			assert.NoError(t, ac.Login(c))
			requireStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestLoginRedirectValidation(t *testing.T) {
	ac := NewAuthController(newTestClient(t))

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/login/redirect",
		`{"phone":"bad","password":"whatever"}`)
	assert.NoError(t, ac.LoginRedirect(c))
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestValidateTokenWithoutHeader(t *testing.T) {
	ac := NewAuthController(newTestClient(t))

	c, rec := newJSONContext(t, http.MethodGet, "/api/auth/validate-token", "")
	assert.NoError(t, ac.ValidateToken(c))
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestValidateTokenWithGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ac := NewAuthController(newTestClient(t))

	c, rec := newJSONContext(t, http.MethodGet, "/api/auth/validate-token", "")
	c.Request().Header.Set("Authorization", "Bearer not.a.token")
	assert.NoError(t, ac.ValidateToken(c))
	requireStatus(t, rec, http.StatusUnauthorized)
}
