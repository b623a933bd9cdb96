package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mhmk1399/complex-dashboard-sub002/controllers"
	"github.com/Mhmk1399/complex-dashboard-sub002/middleware"
)

// RegisterUsageRoutes sets up AI token metering routes
func RegisterUsageRoutes(e *echo.Echo, db *mongo.Client) {
	usageController := controllers.NewUsageController(db)

	usageGroup := e.Group("/api/usage", middleware.JWTMiddleware())
	usageGroup.POST("/initialize", usageController.Initialize)
	usageGroup.GET("", usageController.GetUsage)
	usageGroup.POST("/consume", usageController.Consume)
	usageGroup.POST("/topup", usageController.TopUp)
}
