package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := GenerateJWT("user123", "store456", "owner", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "user123", claims.UserID)
	assert.Equal(t, "store456", claims.StoreID)
	assert.Equal(t, "owner", claims.Role)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestGenerateJWTWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("user123", "store456", "owner", time.Hour)
	assert.Error(t, err)
}

func TestClaimsValid(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name    string
		claims  JwtCustomClaims
		wantErr bool
	}{
		{
			name: "complete claims",
			claims: JwtCustomClaims{
				UserID: "u1", StoreID: "s1", Role: "owner",
				StandardClaims: jwt.StandardClaims{ExpiresAt: future},
			},
			wantErr: false,
		},
		{
			name: "missing userId",
			claims: JwtCustomClaims{
				StoreID:        "s1",
				StandardClaims: jwt.StandardClaims{ExpiresAt: future},
			},
			wantErr: true,
		},
		{
			name: "missing storeId",
			claims: JwtCustomClaims{
				UserID:         "u1",
				StandardClaims: jwt.StandardClaims{ExpiresAt: future},
			},
			wantErr: true,
		},
		{
			name: "expired",
			claims: JwtCustomClaims{
				UserID: "u1", StoreID: "s1",
				StandardClaims: jwt.StandardClaims{ExpiresAt: past},
			},
			wantErr: true,
		},
		{
			name: "not yet valid",
			claims: JwtCustomClaims{
				UserID: "u1", StoreID: "s1",
				StandardClaims: jwt.StandardClaims{ExpiresAt: future, NotBefore: future},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claims.Valid()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
