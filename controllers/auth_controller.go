// controllers/auth_controller.go
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

	"github.com/Mhmk1399/complex-dashboard-sub002/config"
	"github.com/Mhmk1399/complex-dashboard-sub002/middleware"
	"github.com/Mhmk1399/complex-dashboard-sub002/models"
	"github.com/Mhmk1399/complex-dashboard-sub002/utils"
)

// AuthController contains authentication logic
type AuthController struct {
	DB     *mongo.Client
	logger *log.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client) *AuthController {
	return &AuthController{
		DB:     db,
		logger: log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// Register creates a credential record for a phone that already passed
// verification and issues a dashboard session token.
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
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

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid phone number format",
		})
	}

	req.Name = utils.SanitizeInput(req.Name)
	req.LastName = utils.SanitizeInput(req.LastName)
	req.StoreID = utils.SanitizeInput(req.StoreID)
	if req.StoreID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Store ID is required",
		})
	}

	role := utils.SanitizeInput(req.Role)
	if role == "" {
		role = "owner"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Registration is gated on a confirmed verification for this phone
	verificationColl := config.GetCollection(ac.DB, "verifications")
	err = verificationColl.FindOne(ctx, bson.M{
		"phone":    phone,
		"verified": true,
	}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Phone number not verified",
			})
		}
		ac.logger.Printf("Database error checking verification: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Registration failed",
		})
	}

	usersColl := config.GetCollection(ac.DB, "users")
	err = usersColl.FindOne(ctx, bson.M{"phone": phone}).Err()
	if err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "User already exists",
		})
	}
	if err != mongo.ErrNoDocuments {
		ac.logger.Printf("Database error checking existing user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Registration failed",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		ac.logger.Printf("Error hashing password: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Error hashing password",
		})
	}

	now := time.Now()
	user := models.User{
		Phone:         phone,
		Password:      hashedPassword,
		Name:          req.Name,
		LastName:      req.LastName,
		StoreID:       req.StoreID,
		Role:          role,
		PhoneVerified: true,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	insertResult, err := usersColl.InsertOne(ctx, user)
	if err != nil {
		// The unique phone index closes the find/insert race
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "User already exists",
			})
		}
		ac.logger.Printf("Failed to create user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	user.ID = insertResult.InsertedID.(primitive.ObjectID)

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.StoreID, user.Role, models.DashboardFlow.TokenTTL)
	if err != nil {
		ac.logger.Printf("Failed to generate token: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	user.Password = ""

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Registration successful",
		Data: map[string]interface{}{
			"token": token,
			"user":  user,
		},
	})
}

// Login authenticates a dashboard session (1h token). The dashboard flow also
// requires a verified phone on every login.
func (ac *AuthController) Login(c echo.Context) error {
	return ac.login(c, models.DashboardFlow)
}

// LoginRedirect authenticates the cross-app redirect flow (7d token, no
// verification re-check).
func (ac *AuthController) LoginRedirect(c echo.Context) error {
	return ac.login(c, models.StorefrontFlow)
}

func (ac *AuthController) login(c echo.Context, flow models.AuthFlow) error {
	var req models.LoginRequest
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

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid phone number format",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(ac.DB, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Same shape as a wrong password: no account enumeration
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		}
		ac.logger.Printf("Database error during login: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Login failed",
		})
	}

	if err := utils.CheckPassword(req.Password, user.Password); err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	if flow.VerifyOnLogin {
		verificationColl := config.GetCollection(ac.DB, "verifications")
		err = verificationColl.FindOne(ctx, bson.M{
			"phone":    phone,
			"verified": true,
		}).Err()
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Phone number not verified",
				})
			}
			ac.logger.Printf("Database error checking verification: %v", err)
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Login failed",
			})
		}
	}

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.StoreID, user.Role, flow.TokenTTL)
	if err != nil {
		ac.logger.Printf("Failed to generate token: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	// Update user's active status
	update := bson.M{"$set": bson.M{"isActive": true, "updatedAt": time.Now()}}
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		// Log the error but don't fail the login
		ac.logger.Printf("Failed to update user active status: %v", err)
	}

	user.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"user":  user,
		},
	})
}

// Me returns the authenticated user's profile.
func (ac *AuthController) Me(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, ac.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User profile retrieved",
		Data:    user,
	})
}

// ValidateToken lets clients check session validity without triggering the
// JWT middleware's error path.
func (ac *AuthController) ValidateToken(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")

	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	result, err := utils.ValidateToken(tokenString, ac.DB)
	if err != nil {
		ac.logger.Printf("Token validation error: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Token validation failed",
		})
	}

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnauthorized
	}

	return c.JSON(status, models.Response{
		Status:  status,
		Message: result.Message,
		Data:    result,
	})
}
