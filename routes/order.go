package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/sellerhub/marketplace-api/controllers/order"
	"github.com/sellerhub/marketplace-api/middleware"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, deps orderControllers.Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Create a new order
		orders.POST("/place", orderControllers.PlaceOrderHandler(db, deps))

		// Fetch orders for a specific user
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))

		// Fetch a single order by id or order_ref
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Update order status (e.g., shipped, cancelled)
		orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))

		// Update payment status (e.g., paid, refunded)
		orders.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))

		// Cancel an order
		orders.PUT("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
	}
}
