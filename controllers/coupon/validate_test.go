package couponControllers

import (
	"errors"
	"testing"
	"time"

	"github.com/sellerhub/marketplace-api/errs"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Coupon{}))
	return db
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func activeCoupon() *models.Coupon {
	now := time.Now()
	return &models.Coupon{
		Code:          "SAVE10",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
	}
}

func TestEvaluatePercentageClampedToMax(t *testing.T) {
	coupon := activeCoupon()
	coupon.MinOrderValue = floatPtr(500)
	coupon.MaxDiscountAmount = floatPtr(100)

	// Raw discount is 200, clamped to the max of 100.
	amount, err := Evaluate(coupon, 2000, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 100.0, amount)
}

func TestEvaluateBelowMinimum(t *testing.T) {
	coupon := activeCoupon()
	coupon.MinOrderValue = floatPtr(500)

	_, err := Evaluate(coupon, 300, time.Now())
	var rejection *errs.CouponRejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, errs.CouponBelowMinimum, rejection.Reason)
}

func TestEvaluateFixedClampedToOrderValue(t *testing.T) {
	coupon := activeCoupon()
	coupon.DiscountType = models.DiscountFixed
	coupon.DiscountValue = 50

	amount, err := Evaluate(coupon, 30, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 30.0, amount)
}

func TestEvaluateRoundsToTwoDecimals(t *testing.T) {
	coupon := activeCoupon()

	// 10% of 123.45 is 12.345, rounded half away from zero.
	amount, err := Evaluate(coupon, 123.45, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 12.35, amount)
}

func TestEvaluateRejectionOrder(t *testing.T) {
	now := time.Now()

	inactive := activeCoupon()
	inactive.IsActive = false
	// Inactive wins even when the window is also wrong.
	inactive.ValidUntil = now.Add(-time.Hour)
	_, err := Evaluate(inactive, 1000, now)
	var rejection *errs.CouponRejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, errs.CouponInactive, rejection.Reason)

	early := activeCoupon()
	early.ValidFrom = now.Add(time.Hour)
	_, err = Evaluate(early, 1000, now)
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, errs.CouponNotYetValid, rejection.Reason)

	expired := activeCoupon()
	expired.ValidUntil = now.Add(-time.Hour)
	_, err = Evaluate(expired, 1000, now)
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, errs.CouponExpired, rejection.Reason)

	exhausted := activeCoupon()
	exhausted.UsageLimit = intPtr(5)
	exhausted.UsedCount = 5
	_, err = Evaluate(exhausted, 1000, now)
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, errs.CouponLimitReached, rejection.Reason)
}

func TestEvaluateDiscountNeverExceedsOrderValue(t *testing.T) {
	coupon := activeCoupon()
	coupon.DiscountValue = 100 // 100% of the order

	amount, err := Evaluate(coupon, 750, time.Now())
	require.NoError(t, err)
	assert.LessOrEqual(t, amount, 750.0)
}

func TestValidateCouponIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(activeCoupon()).Error)

	amount, coupon, err := ValidateCoupon(db, "  save10 ", 200)
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
	assert.Equal(t, 20.0, amount)
}

func TestValidateCouponNotFound(t *testing.T) {
	db := newTestDB(t)

	_, _, err := ValidateCoupon(db, "NOPE", 200)
	var notFound *errs.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestConsumeCouponGuardsUsageLimit(t *testing.T) {
	db := newTestDB(t)
	coupon := activeCoupon()
	coupon.UsageLimit = intPtr(2)
	coupon.UsedCount = 1
	require.NoError(t, db.Create(coupon).Error)

	require.NoError(t, ConsumeCoupon(db, "save10"))

	// Second consumption is at the limit and must be refused.
	err := ConsumeCoupon(db, "SAVE10")
	var precondition *errs.PreconditionError
	assert.True(t, errors.As(err, &precondition))

	var stored models.Coupon
	require.NoError(t, db.Where("code = ?", "SAVE10").First(&stored).Error)
	assert.Equal(t, 2, stored.UsedCount)
}
