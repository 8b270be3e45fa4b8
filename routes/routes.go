package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/sellerhub/marketplace-api/controllers/order"
	productcontroller "github.com/sellerhub/marketplace-api/controllers/product"
	sellerControllers "github.com/sellerhub/marketplace-api/controllers/seller"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Public, User, Seller,
// Admin and Order route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps orderControllers.Deps) {
	// 1️⃣ Public routes (no middleware)
	SetupPublicRoutes(r, db)

	// 2️⃣ Buyer routes (JWT-protected)
	SetupUserRoutes(r, db, deps)

	// 3️⃣ Seller portal routes (JWT-protected)
	SetupSellerRoutes(r, db, deps)

	// 4️⃣ Admin routes (API-Key-protected)
	SetupAdminRoutes(r, db, deps)

	// order routes
	SetupOrderRoutes(r, db, deps)
}

// SetupPublicRoutes registers the storefront read endpoints and seller
// registration.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategories(db))
	r.POST("/sellers/register", sellerControllers.RegisterSeller(db))
}
