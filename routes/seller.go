package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/sellerhub/marketplace-api/controllers/order"
	productcontroller "github.com/sellerhub/marketplace-api/controllers/product"
	"github.com/sellerhub/marketplace-api/middleware"
	"gorm.io/gorm"
)

// SetupSellerRoutes registers all "/seller/*" endpoints. Requires JWT middleware.
func SetupSellerRoutes(r *gin.Engine, db *gorm.DB, deps orderControllers.Deps) {
	sellerGroup := r.Group("/seller")
	sellerGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Product Management ────────────────
		products := sellerGroup.Group("/products")
		{
			products.POST("", productcontroller.CreateProduct(db))
			products.PUT("/:id", productcontroller.UpdateProduct(db, deps.Cache))
			products.DELETE("/:id", productcontroller.DeleteProduct(db, deps.Cache))

			// Commission pricing
			products.PUT("/:id/commission", productcontroller.SetCommissionHandler(db, deps.Cache))
			products.PUT("/:id/commission-details", productcontroller.SetCommissionDetailsHandler(db, deps.Cache))
		}

		// ──────────────── Seller Orders ────────────────
		sellerGroup.GET("/orders", orderControllers.GetSellerOrdersHandler(db))
	}
}
