package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/sellerhub/marketplace-api/controllers/cart"
	couponControllers "github.com/sellerhub/marketplace-api/controllers/coupon"
	orderControllers "github.com/sellerhub/marketplace-api/controllers/order"
	userControllers "github.com/sellerhub/marketplace-api/controllers/user"
	"github.com/sellerhub/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, deps orderControllers.Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Buyer Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                  // GET /user/cart
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))              // POST /user/cart
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db)) // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))             // DELETE /user/cart
			cartGroup.POST("/reconcile", cartControllers.ReconcileCartHandler(db))
		}

		// ──────────────── Coupons ────────────────
		userGroup.POST("/coupons/validate", couponControllers.ValidateCouponHandler(db))
	}
}
