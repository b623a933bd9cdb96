package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order model
type Order struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreID       string             `json:"storeId" bson:"storeId"`
	OrderNumber   string             `json:"orderNumber" bson:"orderNumber"`
	CustomerName  string             `json:"customerName" bson:"customerName"`
	CustomerPhone string             `json:"customerPhone" bson:"customerPhone"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	Items         []OrderItem        `json:"items" bson:"items"`
	TotalPrice    int64              `json:"totalPrice" bson:"totalPrice"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Quantity  int                `json:"quantity" bson:"quantity" validate:"gt=0"`
	UnitPrice int64              `json:"unitPrice" bson:"unitPrice" validate:"gte=0"`
}

type OrderRequest struct {
	CustomerName  string      `json:"customerName" validate:"required"`
	CustomerPhone string      `json:"customerPhone"`
	Address       string      `json:"address,omitempty"`
	Items         []OrderItem `json:"items" validate:"required,min=1,dive"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
