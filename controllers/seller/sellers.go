package sellerControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellerhub/marketplace-api/models"
	"gorm.io/gorm"
)

type RegisterSellerInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// POST /sellers/register — new sellers start unapproved.
func RegisterSeller(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterSellerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		seller := models.Seller{
			ID:    uuid.NewString(),
			Name:  input.Name,
			Email: input.Email,
			Phone: input.Phone,
		}
		if err := db.Create(&seller).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register seller"})
			return
		}
		c.JSON(http.StatusCreated, seller)
	}
}

// GET /admin/sellers
func GetAllSellers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sellers []models.Seller
		if err := db.Order("created_at desc").Find(&sellers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sellers"})
			return
		}
		c.JSON(http.StatusOK, sellers)
	}
}

// GET /admin/sellers/pending — sellers awaiting approval.
func ListPendingSellers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []models.Seller
		if err := db.Where("approved = ?", false).Find(&pending).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending sellers"})
			return
		}
		c.JSON(http.StatusOK, pending)
	}
}

// POST /admin/sellers/approve
func ApproveSeller(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		var seller models.Seller
		if err := db.Where("email = ?", req.Email).First(&seller).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Seller not found"})
			return
		}

		if err := db.Model(&seller).Update("approved", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve seller"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Seller approved"})
	}
}

// POST /admin/sellers/reject
func RejectSeller(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		if err := db.Where("email = ?", req.Email).Delete(&models.Seller{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject seller"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Seller rejected"})
	}
}
