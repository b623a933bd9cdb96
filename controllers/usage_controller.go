// controllers/usage_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mhmk1399/complex-dashboard-sub002/models"
	"github.com/Mhmk1399/complex-dashboard-sub002/repositories"
	"github.com/Mhmk1399/complex-dashboard-sub002/utils"
)

// UsageController meters AI token consumption per store.
type UsageController struct {
	DB     *mongo.Client
	repo   *repositories.UsageRepository
	logger *log.Logger
}

// NewUsageController creates a new usage controller
func NewUsageController(db *mongo.Client) *UsageController {
	return &UsageController{
		DB:     db,
		repo:   repositories.NewUsageRepository(db),
		logger: log.New(os.Stdout, "[USAGE] ", log.LstdFlags),
	}
}

// requireOwnStore checks the requested store against the token's store claim.
func requireOwnStore(c echo.Context, storeID string) error {
	tokenStore, err := utils.GetStoreIDFromToken(c)
	if err != nil {
		return echo.ErrUnauthorized
	}
	if tokenStore != storeID {
		return echo.ErrForbidden
	}
	return nil
}

// Initialize creates the store's token ledger with the default allotment if
// it does not exist yet. Safe to call repeatedly.
func (uc *UsageController) Initialize(c echo.Context) error {
	var req models.InitializeUsageRequest
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

	req.StoreID = utils.SanitizeInput(req.StoreID)
	if req.StoreID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Store ID is required",
		})
	}

	if err := requireOwnStore(c, req.StoreID); err != nil {
		return uc.accessDenied(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usage, err := uc.repo.Initialize(ctx, req.StoreID)
	if err != nil {
		uc.logger.Printf("Failed to initialize usage for store %s: %v", req.StoreID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to initialize token usage",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Token usage initialized",
		Data:    usage,
	})
}

// GetUsage returns the ledger summary with the last 10 history entries.
func (uc *UsageController) GetUsage(c echo.Context) error {
	storeID := utils.SanitizeInput(c.QueryParam("storeId"))
	if storeID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Store ID is required",
		})
	}

	if err := requireOwnStore(c, storeID); err != nil {
		return uc.accessDenied(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usage, err := uc.repo.Get(ctx, storeID, 10)
	if err != nil {
		if err == repositories.ErrUsageNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Token usage record not found",
			})
		}
		uc.logger.Printf("Failed to load usage for store %s: %v", storeID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load token usage",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Token usage retrieved",
		Data:    usage,
	})
}

// Consume debits tokens for an AI feature invocation.
func (uc *UsageController) Consume(c echo.Context) error {
	var req models.ConsumeRequest
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

	// Sanitizing can empty a whitespace-only field that passed validation
	req.StoreID = utils.SanitizeInput(req.StoreID)
	req.Feature = utils.SanitizeInput(req.Feature)

	if req.StoreID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Store ID is required",
		})
	}
	if req.Feature == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Feature is required",
		})
	}

	if err := requireOwnStore(c, req.StoreID); err != nil {
		return uc.accessDenied(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usage, err := uc.repo.Consume(ctx, req.StoreID, req.TokensUsed, req.Feature, req.Prompt)
	if err != nil {
		if err == repositories.ErrUsageNotFound {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Token usage record not found",
			})
		}
		var insufficientErr *repositories.InsufficientTokensError
		if errors.As(err, &insufficientErr) {
			return c.JSON(http.StatusPaymentRequired, models.Response{
				Status:  http.StatusPaymentRequired,
				Message: "Insufficient tokens",
				Data: map[string]interface{}{
					"remainingTokens": insufficientErr.Remaining,
					"requestedTokens": insufficientErr.Requested,
				},
			})
		}
		uc.logger.Printf("Failed to consume tokens for store %s: %v", req.StoreID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to consume tokens",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tokens consumed",
		Data: map[string]interface{}{
			"remainingTokens": usage.RemainingTokens,
			"usedTokens":      usage.UsedTokens,
		},
	})
}

// TopUp adds tokens to the store's allotment.
func (uc *UsageController) TopUp(c echo.Context) error {
	var req models.TopUpRequest
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

	req.StoreID = utils.SanitizeInput(req.StoreID)
	if req.StoreID == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Store ID is required",
		})
	}

	if err := requireOwnStore(c, req.StoreID); err != nil {
		return uc.accessDenied(c, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usage, err := uc.repo.TopUp(ctx, req.StoreID, req.TokensToAdd)
	if err != nil {
		uc.logger.Printf("Failed to top up tokens for store %s: %v", req.StoreID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to top up tokens",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tokens added",
		Data: map[string]interface{}{
			"totalTokens":     usage.TotalTokens,
			"remainingTokens": usage.RemainingTokens,
		},
	})
}

func (uc *UsageController) accessDenied(c echo.Context, err error) error {
	if err == echo.ErrForbidden {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied for this store",
		})
	}
	return c.JSON(http.StatusUnauthorized, models.Response{
		Status:  http.StatusUnauthorized,
		Message: "Unauthorized",
	})
}
