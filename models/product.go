package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product model
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreID     string             `json:"storeId" bson:"storeId"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       int64              `json:"price" bson:"price"`
	Stock       int                `json:"stock" bson:"stock"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	Thumbnail   string             `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Status      string             `json:"status" bson:"status"` // "active", "draft", "archived"
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category,omitempty"`
	Images      []string `json:"images,omitempty"`
	Status      string   `json:"status,omitempty"`
}
