// controllers/order_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
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

// OrderController handles store orders
type OrderController struct {
	DB     *mongo.Client
	hub    *websocket.Hub
	logger *log.Logger
}

// NewOrderController creates a new order controller
func NewOrderController(db *mongo.Client, hub *websocket.Hub) *OrderController {
	return &OrderController{
		DB:     db,
		hub:    hub,
		logger: log.New(os.Stdout, "[ORDER] ", log.LstdFlags),
	}
}

// generateOrderNumber produces a short human-readable order reference.
func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// CreateOrder records a new order for the authenticated store and notifies
// connected dashboard clients.
func (oc *OrderController) CreateOrder(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.OrderRequest
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

	req.CustomerName = utils.SanitizeInput(req.CustomerName)
	if req.CustomerName == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Customer name is required",
		})
	}

	var total int64
	for _, item := range req.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}

	now := time.Now()
	order := models.Order{
		StoreID:       storeID,
		OrderNumber:   generateOrderNumber(),
		CustomerName:  req.CustomerName,
		CustomerPhone: utils.SanitizeInput(req.CustomerPhone),
		Address:       utils.SanitizeInput(req.Address),
		Items:         req.Items,
		TotalPrice:    total,
		Status:        models.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(oc.DB, "orders")
	result, err := collection.InsertOne(ctx, order)
	if err != nil {
		oc.logger.Printf("Failed to create order: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	order.ID = result.InsertedID.(primitive.ObjectID)

	if oc.hub != nil {
		oc.hub.NotifyOrderCreated(storeID, order)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Order created",
		Data:    order,
	})
}

// GetOrders lists the store's orders, newest first.
func (oc *OrderController) GetOrders(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	filter := bson.M{"storeId": storeID}
	if status := utils.SanitizeInput(c.QueryParam("status")); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(oc.DB, "orders")
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		oc.logger.Printf("Failed to list orders: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		oc.logger.Printf("Failed to decode orders: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Orders retrieved",
		Data:    orders,
	})
}

// GetOrder returns one order owned by the authenticated store.
func (oc *OrderController) GetOrder(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(oc.DB, "orders")
	var order models.Order
	err = collection.FindOne(ctx, bson.M{"_id": orderID, "storeId": storeID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Order not found",
			})
		}
		oc.logger.Printf("Failed to load order: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Order retrieved",
		Data:    order,
	})
}

// UpdateOrderStatus moves an order to a new status and broadcasts the change.
func (oc *OrderController) UpdateOrderStatus(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	var req models.OrderStatusRequest
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

	if !models.ValidOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid order status",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(oc.DB, "orders")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err = collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": orderID, "storeId": storeID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
		opts,
	).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Order not found",
			})
		}
		oc.logger.Printf("Failed to update order status: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update order status",
		})
	}

	if oc.hub != nil {
		oc.hub.NotifyOrderUpdated(storeID, order)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Order status updated",
		Data:    order,
	})
}
