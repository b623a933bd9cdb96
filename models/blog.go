package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a store-scoped blog post shown on the generated site.
type Blog struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreID    string             `json:"storeId" bson:"storeId"`
	Title      string             `json:"title" bson:"title"`
	Content    string             `json:"content" bson:"content"`
	CoverImage string             `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Tags       []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Published  bool               `json:"published" bson:"published"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type BlogRequest struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Published  bool     `json:"published"`
}
