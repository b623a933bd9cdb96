package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mhmk1399/complex-dashboard-sub002/config"
	"github.com/Mhmk1399/complex-dashboard-sub002/models"
)

// ErrUsageNotFound is returned when no ledger exists for a store.
var ErrUsageNotFound = errors.New("usage record not found")

// InsufficientTokensError carries the balance state that failed the debit.
type InsufficientTokensError struct {
	Remaining int64
	Requested int64
}

func (e *InsufficientTokensError) Error() string {
	return fmt.Sprintf("insufficient tokens: %d remaining, %d requested", e.Remaining, e.Requested)
}

// UsageRepository owns the tokenUsage collection. All balance mutations go
// through single conditional updates so concurrent consumers cannot overspend.
type UsageRepository struct {
	collection *mongo.Collection
}

func NewUsageRepository(db *mongo.Client) *UsageRepository {
	return &UsageRepository{
		collection: config.GetCollection(db, "tokenUsage"),
	}
}

// Initialize returns the store's ledger, creating it with the default
// allotment if absent. Idempotent.
func (r *UsageRepository) Initialize(ctx context.Context, storeID string) (*models.TokenUsage, error) {
	now := time.Now()
	filter := bson.M{"storeId": storeID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"storeId":         storeID,
			"totalTokens":     int64(models.DefaultTokenAllotment),
			"usedTokens":      int64(0),
			"remainingTokens": int64(models.DefaultTokenAllotment),
			"createdAt":       now,
			"updatedAt":       now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var usage models.TokenUsage
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&usage)
	if err != nil {
		return nil, err
	}
	return &usage, nil
}

// Get returns the ledger with only the most recent history entries.
func (r *UsageRepository) Get(ctx context.Context, storeID string, historyLimit int) (*models.TokenUsage, error) {
	opts := options.FindOne()
	if historyLimit > 0 {
		opts.SetProjection(bson.M{"history": bson.M{"$slice": -historyLimit}})
	}

	var usage models.TokenUsage
	err := r.collection.FindOne(ctx, bson.M{"storeId": storeID}, opts).Decode(&usage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUsageNotFound
		}
		return nil, err
	}
	return &usage, nil
}

// Consume debits tokens for a feature invocation. The sufficiency check rides
// in the update filter, so the check and the debit are one atomic command: of
// two concurrent consumes racing over the same balance, at most one can match.
func (r *UsageRepository) Consume(ctx context.Context, storeID string, tokens int64, feature, prompt string) (*models.TokenUsage, error) {
	now := time.Now()
	entry := models.UsageEntry{
		ID:         uuid.NewString(),
		TokensUsed: tokens,
		Feature:    feature,
		Prompt:     models.TruncatePrompt(prompt),
		CreatedAt:  now,
	}

	filter := bson.M{
		"storeId":         storeID,
		"remainingTokens": bson.M{"$gte": tokens},
	}
	update := bson.M{
		"$inc": bson.M{
			"usedTokens":      tokens,
			"remainingTokens": -tokens,
		},
		"$set": bson.M{
			"lastUsed":  now,
			"updatedAt": now,
		},
		"$push": bson.M{"history": entry},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var usage models.TokenUsage
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&usage)
	if err == nil {
		return &usage, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// No match: either the ledger is missing or the balance fell short.
	current, getErr := r.Get(ctx, storeID, 0)
	if getErr != nil {
		return nil, getErr
	}
	return nil, &InsufficientTokensError{
		Remaining: current.RemainingTokens,
		Requested: tokens,
	}
}

// TopUp adds tokens to the store's allotment, creating the ledger lazily.
func (r *UsageRepository) TopUp(ctx context.Context, storeID string, amount int64) (*models.TokenUsage, error) {
	now := time.Now()
	filter := bson.M{"storeId": storeID}
	update := bson.M{
		"$inc": bson.M{
			"totalTokens":     amount,
			"remainingTokens": amount,
		},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"storeId":    storeID,
			"usedTokens": int64(0),
			"createdAt":  now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var usage models.TokenUsage
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&usage)
	if err != nil {
		return nil, err
	}
	return &usage, nil
}
