package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/cache"
	"github.com/sellerhub/marketplace-api/errs"
	"github.com/sellerhub/marketplace-api/models"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type SetCommissionRequest struct {
	Commission string `json:"commission" binding:"required"` // "Yes" or "No"
}

type SetCommissionDetailsRequest struct {
	CommissionType  string   `json:"commission_type" binding:"required"`
	CommissionValue *float64 `json:"commission_value" binding:"required"`
	FinalPrice      *float64 `json:"final_price" binding:"required"`
}

// -------- Core Logic --------

// DisplayPrice returns the price a buyer is charged for a line item. A
// non-zero authoritative final price always wins over the client-supplied
// listed price, so stale or manipulated cart prices never reach an order.
func DisplayPrice(listed, final float64) float64 {
	if final > 0 {
		return final
	}
	return listed
}

// SetCommission flips the commission flag for a product. Disabling
// commission resets type, value and final price in the same transaction,
// so a half-reset product is never visible.
func SetCommission(db *gorm.DB, productID uint, flag models.CommissionFlag) (*models.Product, error) {
	if flag != models.CommissionEnabled && flag != models.CommissionDisabled {
		return nil, errs.Validation("commission must be %q or %q", models.CommissionEnabled, models.CommissionDisabled)
	}

	var product models.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := models.LockForUpdate(tx).First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("product", strconv.FormatUint(uint64(productID), 10))
			}
			return err
		}

		product.Commission = flag
		if flag == models.CommissionDisabled {
			product.CommissionType = models.CommissionPercentage
			product.CommissionValue = 0
			product.FinalPrice = product.Price
		}
		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SetCommissionDetails sets the commission type, value and derived final
// price. Setting details while commission is disabled is rejected.
func SetCommissionDetails(db *gorm.DB, productID uint, typ models.CommissionType, value, finalPrice float64) (*models.Product, error) {
	if typ != models.CommissionPercentage && typ != models.CommissionFixed {
		return nil, errs.Validation("commission_type must be %q or %q", models.CommissionPercentage, models.CommissionFixed)
	}
	if value < 0 {
		return nil, errs.Validation("commission_value must not be negative")
	}
	if finalPrice < 0 {
		return nil, errs.Validation("final_price must not be negative")
	}

	var product models.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := models.LockForUpdate(tx).First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("product", strconv.FormatUint(uint64(productID), 10))
			}
			return err
		}

		if product.Commission != models.CommissionEnabled {
			return errs.Precondition("commission is disabled for product %d", productID)
		}
		product.CommissionType = typ
		product.CommissionValue = value
		product.FinalPrice = finalPrice
		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// -------- Handlers --------

// PUT /seller/products/:id/commission
func SetCommissionHandler(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var req SetCommissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := SetCommission(db, uint(id), models.CommissionFlag(req.Commission))
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		pc.Invalidate(c.Request.Context(), product.ID)
		c.JSON(http.StatusOK, product)
	}
}

// PUT /seller/products/:id/commission-details
func SetCommissionDetailsHandler(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		var req SetCommissionDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := SetCommissionDetails(db, uint(id), models.CommissionType(req.CommissionType), *req.CommissionValue, *req.FinalPrice)
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		pc.Invalidate(c.Request.Context(), product.ID)
		c.JSON(http.StatusOK, product)
	}
}
