package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/sellerhub/marketplace-api/controllers/cart"
	couponControllers "github.com/sellerhub/marketplace-api/controllers/coupon"
	orderControllers "github.com/sellerhub/marketplace-api/controllers/order"
	productcontroller "github.com/sellerhub/marketplace-api/controllers/product"
	sellerControllers "github.com/sellerhub/marketplace-api/controllers/seller"
	userControllers "github.com/sellerhub/marketplace-api/controllers/user"
	"github.com/sellerhub/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, deps orderControllers.Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Seller Onboarding ───────────
		sellerMgmt := adminGroup.Group("/sellers")
		{
			sellerMgmt.GET("", sellerControllers.GetAllSellers(db))
			sellerMgmt.GET("/pending", sellerControllers.ListPendingSellers(db))
			sellerMgmt.POST("/approve", sellerControllers.ApproveSeller(db))
			sellerMgmt.POST("/reject", sellerControllers.RejectSeller(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Coupon Management ───────────
		couponAdmin := adminGroup.Group("/coupons")
		{
			couponAdmin.POST("", couponControllers.CreateCouponHandler(db))
			couponAdmin.GET("", couponControllers.GetCouponsHandler(db))
			couponAdmin.PUT("/:code/deactivate", couponControllers.DeactivateCouponHandler(db))
			couponAdmin.DELETE("/:code", couponControllers.DeleteCouponHandler(db))
		}

		// ─────────── Orders ───────────
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(db))

		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
