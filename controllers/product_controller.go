// controllers/product_controller.go
package controllers

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mhmk1399/complex-dashboard-sub002/config"
	"github.com/Mhmk1399/complex-dashboard-sub002/models"
	"github.com/Mhmk1399/complex-dashboard-sub002/utils"
)

// ProductController handles store products
type ProductController struct {
	DB     *mongo.Client
	logger *log.Logger
}

// NewProductController creates a new product controller
func NewProductController(db *mongo.Client) *ProductController {
	return &ProductController{
		DB:     db,
		logger: log.New(os.Stdout, "[PRODUCT] ", log.LstdFlags),
	}
}

// CreateProduct creates a product for the authenticated store.
func (pc *ProductController) CreateProduct(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.ProductRequest
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

	req.Name = utils.SanitizeInput(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Product name is required",
		})
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}

	now := time.Now()
	product := models.Product{
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    utils.SanitizeInput(req.Category),
		Images:      req.Images,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.DB, "products")
	result, err := collection.InsertOne(ctx, product)
	if err != nil {
		pc.logger.Printf("Failed to create product: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create product",
		})
	}

	product.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Product created",
		Data:    product,
	})
}

// GetProducts lists the store's products, newest first.
func (pc *ProductController) GetProducts(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.DB, "products")
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"storeId": storeID}, opts)
	if err != nil {
		pc.logger.Printf("Failed to list products: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve products",
		})
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		pc.logger.Printf("Failed to decode products: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve products",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Products retrieved",
		Data:    products,
	})
}

// UpdateProduct updates a product owned by the authenticated store.
func (pc *ProductController) UpdateProduct(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	var req models.ProductRequest
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

	req.Name = utils.SanitizeInput(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Product name is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.DB, "products")
	update := bson.M{"$set": bson.M{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"stock":       req.Stock,
		"category":    utils.SanitizeInput(req.Category),
		"images":      req.Images,
		"status":      req.Status,
		"updatedAt":   time.Now(),
	}}

	result, err := collection.UpdateOne(ctx, bson.M{"_id": productID, "storeId": storeID}, update)
	if err != nil {
		pc.logger.Printf("Failed to update product: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update product",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product updated",
	})
}

// DeleteProduct removes a product owned by the authenticated store.
func (pc *ProductController) DeleteProduct(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.DB, "products")
	result, err := collection.DeleteOne(ctx, bson.M{"_id": productID, "storeId": storeID})
	if err != nil {
		pc.logger.Printf("Failed to delete product: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete product",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Product deleted",
	})
}

// UploadProductImage saves an uploaded image for a product and attaches the
// stored URL plus a generated thumbnail.
func (pc *ProductController) UploadProductImage(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid product ID",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Image file is required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Failed to open uploaded file",
		})
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Failed to read uploaded file",
		})
	}

	imageURL, err := utils.SaveProductImage(fileData, fileHeader.Filename, storeID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	thumbnailURL, err := utils.GenerateImageThumbnail(imageURL)
	if err != nil {
		// Keep the upload even if the thumbnail fails
		pc.logger.Printf("Failed to generate thumbnail for %s: %v", imageURL, err)
		thumbnailURL = ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.DB, "products")
	update := bson.M{
		"$push": bson.M{"images": imageURL},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if thumbnailURL != "" {
		update["$set"] = bson.M{"thumbnail": thumbnailURL, "updatedAt": time.Now()}
	}

	result, err := collection.UpdateOne(ctx, bson.M{"_id": productID, "storeId": storeID}, update)
	if err != nil {
		pc.logger.Printf("Failed to attach image: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to attach image",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Product not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Image uploaded",
		Data: map[string]interface{}{
			"image":     imageURL,
			"thumbnail": thumbnailURL,
		},
	})
}
