// controllers/verification_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mhmk1399/complex-dashboard-sub002/config"
	"github.com/Mhmk1399/complex-dashboard-sub002/models"
	"github.com/Mhmk1399/complex-dashboard-sub002/utils"
)

// VerificationController handles phone verification
type VerificationController struct {
	DB     *mongo.Client
	logger *log.Logger
}

// NewVerificationController creates a new verification controller
func NewVerificationController(db *mongo.Client) *VerificationController {
	vc := &VerificationController{
		DB:     db,
		logger: log.New(os.Stdout, "[VERIFY] ", log.LstdFlags),
	}

	go vc.startCleanupRoutine()

	return vc
}

// SendCode generates a verification code for the phone, upserts the
// verification record (always resetting verified), and dispatches it via SMS.
// The record is written before dispatch; a failed dispatch leaves it in place
// and the next send overwrites it.
func (vc *VerificationController) SendCode(c echo.Context) error {
	var req models.SendCodeRequest
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

	flow := models.FlowByName(utils.SanitizeInput(req.Flow))

	code, err := utils.GenerateOTP()
	if err != nil {
		vc.logger.Printf("Failed to generate code: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate verification code",
		})
	}

	expiresAt := time.Now().Add(flow.CodeTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(vc.DB, "verifications")
	_, err = collection.UpdateOne(
		ctx,
		bson.M{"phone": phone},
		bson.M{
			"$set": bson.M{
				"code":      code,
				"expiresAt": expiresAt,
				"verified":  false,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		vc.logger.Printf("Failed to save verification record: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save verification code",
		})
	}

	if err := utils.SendOTPViaSMS(phone, code); err != nil {
		vc.logger.Printf("Failed to send code to %s: %v", phone, err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Failed to send verification code",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Verification code sent",
		Data: map[string]interface{}{
			"sent":      true,
			"expiresAt": expiresAt,
		},
	})
}

// ConfirmCode checks a submitted code. The lookup matches phone, code and
// expiry in one query: a wrong code and an expired one are indistinguishable
// to the caller.
func (vc *VerificationController) ConfirmCode(c echo.Context) error {
	var req models.ConfirmCodeRequest
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

	code := strings.TrimSpace(req.Code)
	if !utils.IsValidCode(code) {
		// Rejected before any store access
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Code must be 6 digits",
		})
	}

	phone, err := utils.SanitizePhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid phone number format",
		})
	}

	if redisClient := config.GetRedisClient(); redisClient != nil {
		if err := utils.ValidateOTPAttempts(phone, redisClient); err != nil {
			return c.JSON(http.StatusTooManyRequests, models.Response{
				Status:  http.StatusTooManyRequests,
				Message: "Too many verification attempts. Please try again later.",
			})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(vc.DB, "verifications")
	result := collection.FindOneAndUpdate(
		ctx,
		bson.M{
			"phone":     phone,
			"code":      code,
			"expiresAt": bson.M{"$gt": time.Now()},
		},
		bson.M{"$set": bson.M{"verified": true}},
	)

	if err := result.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid or expired code",
			})
		}
		vc.logger.Printf("Database error during code confirmation: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to confirm code",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Phone number verified",
		Data: map[string]interface{}{
			"verified": true,
		},
	})
}

// cleanupExpiredCodes deletes verification records whose codes expired and
// were never confirmed. Confirmed records stay until the next send overwrites
// them, since registration depends on the verified flag.
func (vc *VerificationController) cleanupExpiredCodes() error {
	ctx := context.Background()
	collection := config.GetCollection(vc.DB, "verifications")

	result, err := collection.DeleteMany(ctx, bson.M{
		"expiresAt": bson.M{"$lt": time.Now()},
		"verified":  false,
	})
	if err != nil {
		vc.logger.Printf("Error cleaning up expired codes: %v", err)
		return err
	}

	if result.DeletedCount > 0 {
		vc.logger.Printf("Cleaned up %d expired verification codes", result.DeletedCount)
	}

	return nil
}

func (vc *VerificationController) startCleanupRoutine() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if err := vc.cleanupExpiredCodes(); err != nil {
			vc.logger.Printf("Verification cleanup failed: %v", err)
		}
	}
}
