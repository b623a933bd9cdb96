// controllers/ticket_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mhmk1399/complex-dashboard-sub002/config"
	"github.com/Mhmk1399/complex-dashboard-sub002/models"
	"github.com/Mhmk1399/complex-dashboard-sub002/utils"
	"github.com/Mhmk1399/complex-dashboard-sub002/websocket"
)

// TicketController handles store support tickets
type TicketController struct {
	DB     *mongo.Client
	hub    *websocket.Hub
	logger *log.Logger
}

// NewTicketController creates a new ticket controller
func NewTicketController(db *mongo.Client, hub *websocket.Hub) *TicketController {
	return &TicketController{
		DB:     db,
		hub:    hub,
		logger: log.New(os.Stdout, "[TICKET] ", log.LstdFlags),
	}
}

// CreateTicket opens a support ticket for the authenticated store.
func (tc *TicketController) CreateTicket(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.TicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    map[string]interface{}{"error": err.Error()},
		})
	}

	req.Subject = utils.SanitizeInput(req.Subject)
	req.Message = utils.SanitizeInput(req.Message)
	if req.Subject == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Subject and message are required",
		})
	}

	priority := utils.SanitizeInput(req.Priority)
	if priority == "" {
		priority = "normal"
	}

	now := time.Now()
	ticket := models.Ticket{
		StoreID:   storeID,
		Subject:   req.Subject,
		Message:   req.Message,
		Priority:  priority,
		Status:    models.TicketStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(tc.DB, "tickets")
	result, err := collection.InsertOne(ctx, ticket)
	if err != nil {
		tc.logger.Printf("Failed to create ticket: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create ticket",
		})
	}

	ticket.ID = result.InsertedID.(primitive.ObjectID)

	if tc.hub != nil {
		tc.hub.NotifyTicketCreated(storeID, ticket)
	}

	// Best-effort support inbox notification
	go func() {
		if err := utils.SendTicketNotification(storeID, ticket.Subject, ticket.Message); err != nil {
			tc.logger.Printf("Failed to send ticket notification: %v", err)
		}
	}()

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Ticket created",
		Data:    ticket,
	})
}

// GetTickets lists the store's tickets, newest first.
func (tc *TicketController) GetTickets(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(tc.DB, "tickets")
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"storeId": storeID}, opts)
	if err != nil {
		tc.logger.Printf("Failed to list tickets: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve tickets",
		})
	}
	defer cursor.Close(ctx)

	tickets := []models.Ticket{}
	if err := cursor.All(ctx, &tickets); err != nil {
		tc.logger.Printf("Failed to decode tickets: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve tickets",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tickets retrieved",
		Data:    tickets,
	})
}

// ReplyTicket appends a reply to a ticket and marks it answered.
func (tc *TicketController) ReplyTicket(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ticketID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ticket ID",
		})
	}

	var req models.TicketReplyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    map[string]interface{}{"error": err.Error()},
		})
	}

	req.Message = utils.SanitizeInput(req.Message)
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Message is required",
		})
	}

	author, _ := c.Get("userId").(string)

	reply := models.TicketReply{
		ID:        uuid.NewString(),
		Author:    author,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(tc.DB, "tickets")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ticket models.Ticket
	err = collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": ticketID, "storeId": storeID},
		bson.M{
			"$push": bson.M{"replies": reply},
			"$set":  bson.M{"status": models.TicketStatusAnswered, "updatedAt": time.Now()},
		},
		opts,
	).Decode(&ticket)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Ticket not found",
			})
		}
		tc.logger.Printf("Failed to reply to ticket: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to reply to ticket",
		})
	}

	if tc.hub != nil {
		tc.hub.NotifyTicketReplied(storeID, ticket)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Reply added",
		Data:    ticket,
	})
}

// CloseTicket marks a ticket closed.
func (tc *TicketController) CloseTicket(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ticketID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ticket ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(tc.DB, "tickets")
	result, err := collection.UpdateOne(
		ctx,
		bson.M{"_id": ticketID, "storeId": storeID},
		bson.M{"$set": bson.M{"status": models.TicketStatusClosed, "updatedAt": time.Now()}},
	)
	if err != nil {
		tc.logger.Printf("Failed to close ticket: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to close ticket",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Ticket not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Ticket closed",
	})
}
