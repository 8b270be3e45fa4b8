package couponControllers

import (
	"errors"
	"strings"
	"time"

	"github.com/sellerhub/marketplace-api/errs"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NormalizeCode upper-cases a coupon code so lookups are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCoupon looks up a coupon by normalized code and evaluates it
// against the candidate order value. It never touches UsedCount.
func ValidateCoupon(db *gorm.DB, code string, orderValue float64) (float64, *models.Coupon, error) {
	code = NormalizeCode(code)
	if code == "" {
		return 0, nil, errs.Validation("coupon code is required")
	}
	if orderValue < 0 {
		return 0, nil, errs.Validation("order value must not be negative")
	}

	var coupon models.Coupon
	if err := db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, errs.NotFound("coupon", code)
		}
		return 0, nil, err
	}

	amount, err := Evaluate(&coupon, orderValue, time.Now())
	if err != nil {
		return 0, nil, err
	}
	return amount, &coupon, nil
}

// Evaluate runs the validation chain in order, short-circuiting on the
// first failure, and returns the discount amount rounded to 2 decimal
// places. Intermediate arithmetic is exact.
func Evaluate(coupon *models.Coupon, orderValue float64, now time.Time) (float64, error) {
	if !coupon.IsActive {
		return 0, errs.RejectCoupon(errs.CouponInactive, "coupon %s is inactive", coupon.Code)
	}
	if now.Before(coupon.ValidFrom) {
		return 0, errs.RejectCoupon(errs.CouponNotYetValid, "coupon %s is not valid before %s", coupon.Code, coupon.ValidFrom.Format(time.RFC3339))
	}
	if now.After(coupon.ValidUntil) {
		return 0, errs.RejectCoupon(errs.CouponExpired, "coupon %s expired on %s", coupon.Code, coupon.ValidUntil.Format(time.RFC3339))
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return 0, errs.RejectCoupon(errs.CouponLimitReached, "coupon %s has reached its usage limit", coupon.Code)
	}
	if coupon.MinOrderValue != nil && orderValue < *coupon.MinOrderValue {
		return 0, errs.RejectCoupon(errs.CouponBelowMinimum, "order value %.2f is below the minimum %.2f for coupon %s", orderValue, *coupon.MinOrderValue, coupon.Code)
	}

	order := decimal.NewFromFloat(orderValue)
	value := decimal.NewFromFloat(coupon.DiscountValue)

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case models.DiscountPercentage:
		discount = order.Mul(value).Div(decimal.NewFromInt(100))
	case models.DiscountFixed:
		discount = value
	default:
		return 0, errs.Validation("coupon %s has unknown discount type %q", coupon.Code, coupon.DiscountType)
	}

	if coupon.MaxDiscountAmount != nil {
		if max := decimal.NewFromFloat(*coupon.MaxDiscountAmount); discount.GreaterThan(max) {
			discount = max
		}
	}
	// A discount can never exceed the order total.
	if discount.GreaterThan(order) {
		discount = order
	}

	return discount.Round(2).InexactFloat64(), nil
}

// ConsumeCoupon records one use of a coupon. The guard in the WHERE clause
// makes concurrent consumption of a near-limit coupon safe. It is meant to
// be called by the payment-capture flow, not by order placement.
func ConsumeCoupon(db *gorm.DB, code string) error {
	code = NormalizeCode(code)
	result := db.Model(&models.Coupon{}).
		Where("code = ? AND (usage_limit IS NULL OR used_count < usage_limit)", code).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.Precondition("coupon %s does not exist or has reached its usage limit", code)
	}
	return nil
}
