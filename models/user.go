// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Phone         string             `json:"phone" bson:"phone"`
	Password      string             `json:"password,omitempty" bson:"password"`
	Name          string             `json:"name,omitempty" bson:"name,omitempty"`
	LastName      string             `json:"lastName,omitempty" bson:"lastName,omitempty"`
	StoreID       string             `json:"storeId" bson:"storeId"`
	Role          string             `json:"role" bson:"role"` // "owner", "editor"
	PhoneVerified bool               `json:"phoneVerified" bson:"phoneVerified"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
