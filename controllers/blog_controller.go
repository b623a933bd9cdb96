// controllers/blog_controller.go
package controllers

import (
	"context"
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

// BlogController handles store blog posts
type BlogController struct {
	DB     *mongo.Client
	logger *log.Logger
}

// NewBlogController creates a new blog controller
func NewBlogController(db *mongo.Client) *BlogController {
	return &BlogController{
		DB:     db,
		logger: log.New(os.Stdout, "[BLOG] ", log.LstdFlags),
	}
}

// CreateBlog creates a blog post for the authenticated store.
func (bc *BlogController) CreateBlog(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var req models.BlogRequest
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

	req.Title = utils.SanitizeInput(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title is required",
		})
	}
	req.Tags = utils.SanitizeStringArray(req.Tags)

	now := time.Now()
	blog := models.Blog{
		StoreID:    storeID,
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Published:  req.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(bc.DB, "blogs")
	result, err := collection.InsertOne(ctx, blog)
	if err != nil {
		bc.logger.Printf("Failed to create blog: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create blog post",
		})
	}

	blog.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Blog post created",
		Data:    blog,
	})
}

// GetBlogs lists the store's blog posts, newest first.
func (bc *BlogController) GetBlogs(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(bc.DB, "blogs")
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"storeId": storeID}, opts)
	if err != nil {
		bc.logger.Printf("Failed to list blogs: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve blog posts",
		})
	}
	defer cursor.Close(ctx)

	blogs := []models.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		bc.logger.Printf("Failed to decode blogs: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve blog posts",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Blog posts retrieved",
		Data:    blogs,
	})
}

// GetBlog returns one blog post owned by the authenticated store.
func (bc *BlogController) GetBlog(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid blog ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(bc.DB, "blogs")
	var blog models.Blog
	err = collection.FindOne(ctx, bson.M{"_id": blogID, "storeId": storeID}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Blog post not found",
			})
		}
		bc.logger.Printf("Failed to load blog: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve blog post",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Blog post retrieved",
		Data:    blog,
	})
}

// UpdateBlog updates a blog post owned by the authenticated store.
func (bc *BlogController) UpdateBlog(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid blog ID",
		})
	}

	var req models.BlogRequest
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

	req.Title = utils.SanitizeInput(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title is required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(bc.DB, "blogs")
	update := bson.M{"$set": bson.M{
		"title":      req.Title,
		"content":    req.Content,
		"coverImage": req.CoverImage,
		"tags":       utils.SanitizeStringArray(req.Tags),
		"published":  req.Published,
		"updatedAt":  time.Now(),
	}}

	result, err := collection.UpdateOne(ctx, bson.M{"_id": blogID, "storeId": storeID}, update)
	if err != nil {
		bc.logger.Printf("Failed to update blog: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update blog post",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Blog post not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Blog post updated",
	})
}

// DeleteBlog removes a blog post owned by the authenticated store.
func (bc *BlogController) DeleteBlog(c echo.Context) error {
	storeID, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid blog ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(bc.DB, "blogs")
	result, err := collection.DeleteOne(ctx, bson.M{"_id": blogID, "storeId": storeID})
	if err != nil {
		bc.logger.Printf("Failed to delete blog: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete blog post",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Blog post not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Blog post deleted",
	})
}
