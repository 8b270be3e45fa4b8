package couponControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/errs"
	"github.com/sellerhub/marketplace-api/models"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CreateCouponRequest struct {
	Code              string    `json:"code" binding:"required"`
	DiscountType      string    `json:"discount_type" binding:"required"`
	DiscountValue     float64   `json:"discount_value" binding:"required,gt=0"`
	ValidFrom         time.Time `json:"valid_from" binding:"required"`
	ValidUntil        time.Time `json:"valid_until" binding:"required"`
	UsageLimit        *int      `json:"usage_limit"`
	MinOrderValue     *float64  `json:"min_order_value"`
	MaxDiscountAmount *float64  `json:"max_discount_amount"`
}

type ValidateCouponRequest struct {
	Code       string   `json:"code" binding:"required"`
	OrderValue *float64 `json:"order_value" binding:"required"`
}

// -------- Handlers --------

// POST /admin/coupons
func CreateCouponHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		typ := models.DiscountType(req.DiscountType)
		if typ != models.DiscountPercentage && typ != models.DiscountFixed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_type must be percentage or fixed"})
			return
		}
		if !req.ValidUntil.After(req.ValidFrom) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_until must be after valid_from"})
			return
		}

		coupon := models.Coupon{
			Code:              NormalizeCode(req.Code),
			DiscountType:      typ,
			DiscountValue:     req.DiscountValue,
			IsActive:          true,
			ValidFrom:         req.ValidFrom,
			ValidUntil:        req.ValidUntil,
			UsageLimit:        req.UsageLimit,
			MinOrderValue:     req.MinOrderValue,
			MaxDiscountAmount: req.MaxDiscountAmount,
		}
		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
			return
		}
		c.JSON(http.StatusCreated, coupon)
	}
}

// GET /admin/coupons
func GetCouponsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at desc").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

// PUT /admin/coupons/:code/deactivate
func DeactivateCouponHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := NormalizeCode(c.Param("code"))
		result := db.Model(&models.Coupon{}).Where("code = ?", code).Update("is_active", false)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deactivated"})
	}
}

// DELETE /admin/coupons/:code
func DeleteCouponHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := NormalizeCode(c.Param("code"))
		result := db.Where("code = ?", code).Delete(&models.Coupon{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
	}
}

// POST /user/coupons/validate
func ValidateCouponHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		amount, coupon, err := ValidateCoupon(db, req.Code, *req.OrderValue)
		if err != nil {
			var rejection *errs.CouponRejection
			if errors.As(err, &rejection) {
				c.JSON(errs.HTTPStatus(err), gin.H{"error": rejection.Msg, "reason": rejection.Reason})
				return
			}
			c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": coupon.Code, "discount_amount": amount})
	}
}
