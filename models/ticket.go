package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket statuses
const (
	TicketStatusOpen     = "open"
	TicketStatusAnswered = "answered"
	TicketStatusClosed   = "closed"
)

// Ticket is a store support ticket.
type Ticket struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoreID   string             `json:"storeId" bson:"storeId"`
	Subject   string             `json:"subject" bson:"subject"`
	Message   string             `json:"message" bson:"message"`
	Priority  string             `json:"priority,omitempty" bson:"priority,omitempty"` // "low", "normal", "high"
	Status    string             `json:"status" bson:"status"`
	Replies   []TicketReply      `json:"replies,omitempty" bson:"replies,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type TicketReply struct {
	ID        string    `json:"id" bson:"id"`
	Author    string    `json:"author" bson:"author"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type TicketRequest struct {
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority,omitempty"`
}

type TicketReplyRequest struct {
	Message string `json:"message" validate:"required"`
}
