package orderControllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/catalog"
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
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Coupon{},
	))
	return db
}

func billing() models.BillingDetails {
	return models.BillingDetails{
		Name:  "Acme Procurement",
		Email: "buyer@acme.example",
		Address: models.Address{
			Country: "DE",
			City:    "Berlin",
			Street:  "Hauptstr. 1",
		},
	}
}

func TestCreateOrderAuthoritativePriceWins(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{
		SellerID:   "seller-7",
		Title:      "Bulk widgets",
		Price:      100,
		FinalPrice: 150,
	}).Error)

	order, degraded, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:  "buyer-1",
		Items:   []OrderItemPayload{{ProductID: "1", Title: "Bulk widgets", Price: 100, Quantity: 3}},
		Billing: billing(),
	})
	require.NoError(t, err)
	require.Empty(t, degraded)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 150.0, order.Items[0].Price) // client-submitted 100 is ignored
	assert.Equal(t, "seller-7", order.Items[0].SellerID)
	assert.Equal(t, 450.0, order.Subtotal)
	assert.Equal(t, 450.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderRef)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.Equal(t, 150.0, stored.Items[0].Price)
}

func TestCreateOrderDegradedLineStillPersists(t *testing.T) {
	db := newTestDB(t)

	order, degraded, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:  "buyer-1",
		Items:   []OrderItemPayload{{ProductID: "/product/999", Title: "Ghost item", Price: 40, Quantity: 2}},
		Billing: billing(),
	})
	require.NoError(t, err)

	require.Len(t, degraded, 1)
	assert.Equal(t, "/product/999", degraded[0].Ref)

	require.Len(t, order.Items, 1)
	assert.Equal(t, catalog.UnknownSeller, order.Items[0].SellerID)
	assert.Equal(t, 40.0, order.Items[0].Price) // falls back to the listed price
	assert.Equal(t, 80.0, order.TotalAmount)
}

func TestCreateOrderPathRefResolves(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{
		SellerID:   "seller-2",
		Title:      "Gears",
		Price:      80,
		FinalPrice: 80,
	}).Error)

	order, degraded, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:  "buyer-1",
		Items:   []OrderItemPayload{{LegacyProductID: "/product/1", Title: "Gears", Price: 80, Quantity: 1}},
		Billing: billing(),
	})
	require.NoError(t, err)
	assert.Empty(t, degraded)
	assert.Equal(t, uint(1), order.Items[0].ProductID)
	assert.Equal(t, "seller-2", order.Items[0].SellerID)
}

func TestCreateOrderAppliesCoupon(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{
		SellerID:   "seller-7",
		Title:      "Bulk widgets",
		Price:      100,
		FinalPrice: 100,
	}).Error)
	maxDiscount := 100.0
	minOrder := 500.0
	require.NoError(t, db.Create(&models.Coupon{
		Code:              "SAVE10",
		DiscountType:      models.DiscountPercentage,
		DiscountValue:     10,
		IsActive:          true,
		ValidFrom:         time.Now().Add(-time.Hour),
		ValidUntil:        time.Now().Add(time.Hour),
		MinOrderValue:     &minOrder,
		MaxDiscountAmount: &maxDiscount,
	}).Error)

	order, _, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:     "buyer-1",
		Items:      []OrderItemPayload{{ProductID: "1", Title: "Bulk widgets", Price: 100, Quantity: 20}},
		Billing:    billing(),
		CouponCode: "save10",
	})
	require.NoError(t, err)

	assert.Equal(t, 2000.0, order.Subtotal)
	assert.Equal(t, 100.0, order.Discount) // raw 200 clamped to max
	assert.Equal(t, 1900.0, order.TotalAmount)
	assert.Equal(t, "SAVE10", order.CouponCode)

	// Validation never consumes the coupon.
	var stored models.Coupon
	require.NoError(t, db.Where("code = ?", "SAVE10").First(&stored).Error)
	assert.Equal(t, 0, stored.UsedCount)
}

func TestCreateOrderCouponRejectionAbortsBeforePersist(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{
		SellerID:   "seller-7",
		Title:      "Bulk widgets",
		Price:      100,
		FinalPrice: 100,
	}).Error)
	minOrder := 500.0
	require.NoError(t, db.Create(&models.Coupon{
		Code:          "SAVE10",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
		MinOrderValue: &minOrder,
	}).Error)

	_, _, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:     "buyer-1",
		Items:      []OrderItemPayload{{ProductID: "1", Title: "Bulk widgets", Price: 100, Quantity: 3}},
		Billing:    billing(),
		CouponCode: "SAVE10",
	})
	var rejection *errs.CouponRejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, errs.CouponBelowMinimum, rejection.Reason)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderReconcilesCart(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{
		SellerID:   "seller-7",
		Title:      "Bulk widgets",
		Price:      100,
		FinalPrice: 150,
	}).Error)
	cart := models.Cart{UserID: "buyer-1"}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&models.CartItem{
		CartID:    cart.CartID,
		ProductID: 1,
		Title:     "Bulk widgets",
		Price:     150,
		Quantity:  5,
		AddedAt:   time.Now(),
	}).Error)

	_, _, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:  "buyer-1",
		Items:   []OrderItemPayload{{ProductID: "1", Title: "Bulk widgets", Price: 150, Quantity: 2}},
		Billing: billing(),
	})
	require.NoError(t, err)

	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ?", cart.CartID).First(&item).Error)
	assert.Equal(t, 3, item.Quantity)
}

func TestCreateOrderClientStatusUpperCased(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{
		SellerID: "seller-7", Title: "Widgets", Price: 10, FinalPrice: 10,
	}).Error)

	order, _, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:        "buyer-1",
		Items:         []OrderItemPayload{{ProductID: "1", Title: "Widgets", Price: 10, Quantity: 1}},
		Billing:       billing(),
		Status:        "processing",
		PaymentStatus: "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
}

func TestFindOrderByIDOrRef(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{
		SellerID: "seller-7", Title: "Widgets", Price: 10, FinalPrice: 10,
	}).Error)

	order, _, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:  "buyer-1",
		Items:   []OrderItemPayload{{ProductID: "1", Title: "Widgets", Price: 10, Quantity: 1}},
		Billing: billing(),
	})
	require.NoError(t, err)

	byID, err := findOrder(db, strconv.FormatUint(uint64(order.ID), 10))
	require.NoError(t, err)
	assert.Equal(t, order.OrderRef, byID.OrderRef)

	// Refs carry a dash and a uuid, so they never parse as a numeric id
	// and must go through the order_ref column.
	byRef, err := findOrder(db, order.OrderRef)
	require.NoError(t, err)
	assert.Equal(t, order.ID, byRef.ID)

	_, err = findOrder(db, "20990101000000-no-such-ref")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestSellerOrdersRejectsNonStringClaim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/seller/orders", nil)
	// JWT map claims decode JSON numbers as float64.
	c.Set("user_id", float64(42))

	GetSellerOrdersHandler(db)(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	var validation *errs.ValidationError

	_, _, err := CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID: "buyer-1", Billing: billing(),
	})
	assert.True(t, errors.As(err, &validation), "empty items")

	_, _, err = CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:  "buyer-1",
		Items:   []OrderItemPayload{{ProductID: "1", Quantity: 0}},
		Billing: billing(),
	})
	assert.True(t, errors.As(err, &validation), "zero quantity")

	_, _, err = CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID: "buyer-1",
		Items:  []OrderItemPayload{{ProductID: "1", Quantity: 1}},
	})
	assert.True(t, errors.As(err, &validation), "missing billing name")

	_, _, err = CreateOrder(context.Background(), db, Deps{}, PlaceOrderRequest{
		UserID:  "buyer-1",
		Items:   []OrderItemPayload{{ProductID: "1", Quantity: 1}},
		Billing: billing(),
		Status:  "SHIPPED-ISH",
	})
	assert.True(t, errors.As(err, &validation), "invalid status")
}
