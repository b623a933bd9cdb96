// models/usage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DefaultTokenAllotment is granted to every store on first initialization.
	DefaultTokenAllotment = 1000

	// MaxPromptLength bounds the prompt text kept in usage history.
	MaxPromptLength = 500
)

// TokenUsage is the per-store AI token ledger. remainingTokens is persisted
// alongside totalTokens/usedTokens and must equal total - used after every
// write; the consume path relies on it for its conditional debit.
type TokenUsage struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreID         string             `json:"storeId" bson:"storeId"`
	TotalTokens     int64              `json:"totalTokens" bson:"totalTokens"`
	UsedTokens      int64              `json:"usedTokens" bson:"usedTokens"`
	RemainingTokens int64              `json:"remainingTokens" bson:"remainingTokens"`
	LastUsed        *time.Time         `json:"lastUsed,omitempty" bson:"lastUsed,omitempty"`
	History         []UsageEntry       `json:"history,omitempty" bson:"history,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UsageEntry is one metered feature invocation.
type UsageEntry struct {
	ID         string    `json:"id" bson:"id"`
	TokensUsed int64     `json:"tokensUsed" bson:"tokensUsed"`
	Feature    string    `json:"feature" bson:"feature"`
	Prompt     string    `json:"prompt,omitempty" bson:"prompt,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

type InitializeUsageRequest struct {
	StoreID string `json:"storeId" validate:"required"`
}

type ConsumeRequest struct {
	StoreID    string `json:"storeId" validate:"required"`
	TokensUsed int64  `json:"tokensUsed" validate:"required,gt=0"`
	Feature    string `json:"feature" validate:"required"`
	Prompt     string `json:"prompt,omitempty"`
}

type TopUpRequest struct {
	StoreID     string `json:"storeId" validate:"required"`
	TokensToAdd int64  `json:"tokensToAdd" validate:"required,gt=0"`
}

// TruncatePrompt trims prompt text to the stored history limit.
func TruncatePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= MaxPromptLength {
		return prompt
	}
	return string(runes[:MaxPromptLength])
}
