package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mhmk1399/complex-dashboard-sub002/controllers"
	"github.com/Mhmk1399/complex-dashboard-sub002/middleware"
	"github.com/Mhmk1399/complex-dashboard-sub002/models"
	"github.com/Mhmk1399/complex-dashboard-sub002/utils"
	"github.com/Mhmk1399/complex-dashboard-sub002/websocket"
)

// RegisterStoreRoutes sets up store content and realtime routes
func RegisterStoreRoutes(e *echo.Echo, db *mongo.Client, hub *websocket.Hub) {
	blogController := controllers.NewBlogController(db)
	productController := controllers.NewProductController(db)
	orderController := controllers.NewOrderController(db, hub)
	ticketController := controllers.NewTicketController(db, hub)
	storeController := controllers.NewStoreController()

	api := e.Group("/api", middleware.JWTMiddleware())

	// Blog routes
	api.POST("/blogs", blogController.CreateBlog)
	api.GET("/blogs", blogController.GetBlogs)
	api.GET("/blogs/:id", blogController.GetBlog)
	api.PUT("/blogs/:id", blogController.UpdateBlog)
	api.DELETE("/blogs/:id", blogController.DeleteBlog)

	// Product routes
	api.POST("/products", productController.CreateProduct)
	api.GET("/products", productController.GetProducts)
	api.PUT("/products/:id", productController.UpdateProduct)
	api.DELETE("/products/:id", productController.DeleteProduct)
	api.POST("/products/:id/image", productController.UploadProductImage)

	// Order routes
	api.POST("/orders", orderController.CreateOrder)
	api.GET("/orders", orderController.GetOrders)
	api.GET("/orders/:id", orderController.GetOrder)
	api.PUT("/orders/:id/status", orderController.UpdateOrderStatus)

	// Ticket routes
	api.POST("/tickets", ticketController.CreateTicket)
	api.GET("/tickets", ticketController.GetTickets)
	api.POST("/tickets/:id/reply", ticketController.ReplyTicket)
	api.PUT("/tickets/:id/close", ticketController.CloseTicket)

	// Storefront QR code
	api.GET("/store/qrcode", storeController.GetStorefrontQRCode)

	// WebSocket endpoint: browsers cannot set an Authorization header on the
	// upgrade request, so the token rides in the query string. A bearer header
	// still works for non-browser clients.
	e.GET("/api/ws", func(c echo.Context) error {
		tokenString := c.QueryParam("token")
		if tokenString == "" {
			if auth := c.Request().Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
				tokenString = auth[7:]
			}
		}
		result, err := utils.ValidateToken(tokenString, db)
		if err != nil || !result.Valid {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Unauthorized",
			})
		}
		return websocket.HandleWebSocket(c, hub, result.User.StoreID)
	})
}
