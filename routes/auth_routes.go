package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mhmk1399/complex-dashboard-sub002/controllers"
	"github.com/Mhmk1399/complex-dashboard-sub002/middleware"
)

// RegisterAuthRoutes sets up verification and authentication routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, authController *controllers.AuthController, verificationController *controllers.VerificationController) {
	// Public verification routes
	e.POST("/api/verification/send", verificationController.SendCode)
	e.POST("/api/verification/confirm", verificationController.ConfirmCode)

	// Public authentication routes
	e.POST("/api/auth/register", authController.Register)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/login/redirect", authController.LoginRedirect)
	e.GET("/api/auth/validate-token", authController.ValidateToken)

	// Authenticated routes
	authGroup := e.Group("/api/auth", middleware.JWTMiddleware())
	authGroup.GET("/me", authController.Me)
}
