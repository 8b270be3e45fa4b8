package orderControllers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellerhub/marketplace-api/cache"
	"github.com/sellerhub/marketplace-api/catalog"
	cartControllers "github.com/sellerhub/marketplace-api/controllers/cart"
	couponControllers "github.com/sellerhub/marketplace-api/controllers/coupon"
	productcontroller "github.com/sellerhub/marketplace-api/controllers/product"
	"github.com/sellerhub/marketplace-api/errs"
	"github.com/sellerhub/marketplace-api/events"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/sellerhub/marketplace-api/notify"
	"gorm.io/gorm"
)

// Deps carries the collaborators of order placement. Cache, Events and
// Mailer may all be nil; every use is best-effort.
type Deps struct {
	Cache  *cache.ProductCache
	Events *events.Producer
	Mailer notify.Sender
}

// -------- Request Structs --------

type OrderItemPayload struct {
	ProductID string `json:"product_id"`
	// Older storefront clients send one of these instead of product_id.
	LegacyProductID string  `json:"productId"`
	LegacyID        string  `json:"id"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	ImageLink       string  `json:"image_link"`
}

// Ref returns the raw product reference, whichever field the client used.
// It may be a bare id or a path-like string such as "/product/14".
func (p OrderItemPayload) Ref() string {
	if p.ProductID != "" {
		return p.ProductID
	}
	if p.LegacyProductID != "" {
		return p.LegacyProductID
	}
	return p.LegacyID
}

type PlaceOrderRequest struct {
	UserID        string                `json:"user_id" binding:"required"`
	Items         []OrderItemPayload    `json:"items" binding:"required"`
	Billing       models.BillingDetails `json:"billing"`
	CouponCode    string                `json:"coupon_code"`
	PaymentMethod string                `json:"payment_method"` // e.g. "card", "cod"
	Status        string                `json:"status"`
	PaymentStatus string                `json:"payment_status"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// DegradedLine reports a line item whose catalog resolution failed and
// which was persisted with sentinel values instead.
type DegradedLine struct {
	Ref    string `json:"ref"`
	Reason string `json:"reason"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(strings.ToUpper(status)) {
	case models.OrderStatusPending:
		return models.OrderStatusPending, nil
	case models.OrderStatusProcessing:
		return models.OrderStatusProcessing, nil
	case models.OrderStatusShipped:
		return models.OrderStatusShipped, nil
	case models.OrderStatusDelivered:
		return models.OrderStatusDelivered, nil
	case models.OrderStatusCancelled:
		return models.OrderStatusCancelled, nil
	default:
		return "", errs.Validation("invalid order status %q", status)
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch models.PaymentStatus(strings.ToUpper(status)) {
	case models.PaymentStatusPending:
		return models.PaymentStatusPending, nil
	case models.PaymentStatusPaid:
		return models.PaymentStatusPaid, nil
	case models.PaymentStatusFailed:
		return models.PaymentStatusFailed, nil
	case models.PaymentStatusRefunded:
		return models.PaymentStatusRefunded, nil
	default:
		return "", errs.Validation("invalid payment status %q", status)
	}
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// -------- Core Logic --------

// CreateOrder turns a raw cart payload into a persisted order. Every line
// is enriched with the authoritative seller id and price from the catalog;
// a failed resolution degrades that single line to sentinel values and the
// order still proceeds. Only validation and a hard persistence failure
// surface as errors. After the order is persisted, cart reconciliation,
// the order-placed event and the confirmation email run best-effort.
func CreateOrder(ctx context.Context, db *gorm.DB, deps Deps, req PlaceOrderRequest) (*models.Order, []DegradedLine, error) {
	if req.UserID == "" {
		return nil, nil, errs.Validation("user_id is required")
	}
	if len(req.Items) == 0 {
		return nil, nil, errs.Validation("order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Ref() == "" {
			return nil, nil, errs.Validation("every item needs a product reference")
		}
		if item.Quantity < 1 {
			return nil, nil, errs.Validation("item quantity must be at least 1")
		}
		if item.Price < 0 {
			return nil, nil, errs.Validation("item price must not be negative")
		}
	}
	if req.Billing.Name == "" {
		return nil, nil, errs.Validation("billing name is required")
	}

	status := models.OrderStatusPending
	if req.Status != "" {
		mapped, err := mapOrderStatus(req.Status)
		if err != nil {
			return nil, nil, err
		}
		status = mapped
	}
	paymentStatus := models.PaymentStatusPending
	if req.PaymentStatus != "" {
		mapped, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			return nil, nil, err
		}
		paymentStatus = mapped
	}

	// Line items are independent reads, so resolutions fan out.
	resolutions := make([]catalog.Resolution, len(req.Items))
	var wg sync.WaitGroup
	for i, item := range req.Items {
		wg.Add(1)
		go func(i int, ref string) {
			defer wg.Done()
			resolutions[i] = catalog.Resolve(ctx, db, deps.Cache, ref)
		}(i, item.Ref())
	}
	wg.Wait()

	var (
		orderItems []models.OrderItem
		degraded   []DegradedLine
		subtotal   float64
	)
	for i, item := range req.Items {
		res := resolutions[i]
		if res.Degraded {
			degraded = append(degraded, DegradedLine{Ref: item.Ref(), Reason: res.Reason})
			log.Printf("⚠️ order enrichment degraded for %q: %s", item.Ref(), res.Reason)
		}
		productID, _ := catalog.ParseRef(item.Ref())
		price := productcontroller.DisplayPrice(item.Price, res.FinalPrice)
		subtotal += price * float64(item.Quantity)

		orderItems = append(orderItems, models.OrderItem{
			ProductID: productID,
			SellerID:  res.SellerID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			Price:     price,
			ImageLink: item.ImageLink,
		})
	}
	subtotal = round2(subtotal)

	var (
		discount   float64
		couponCode string
	)
	if req.CouponCode != "" {
		amount, coupon, err := couponControllers.ValidateCoupon(db, req.CouponCode, subtotal)
		if err != nil {
			return nil, degraded, err
		}
		discount = amount
		couponCode = coupon.Code
	}

	order := models.Order{
		OrderRef:      generateOrderRef(),
		UserID:        req.UserID,
		Items:         orderItems,
		Billing:       req.Billing,
		CouponCode:    couponCode,
		Subtotal:      subtotal,
		Discount:      discount,
		TotalAmount:   round2(subtotal - discount),
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: paymentStatus,
		Status:        status,
		CreatedAt:     time.Now(),
	}

	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, degraded, &errs.TransactionError{Op: "order creation", Err: err}
	}

	// Best-effort downstream effects. Failures are logged, never surfaced.
	orderedItems := make([]cartControllers.OrderedItem, 0, len(req.Items))
	for _, item := range req.Items {
		orderedItems = append(orderedItems, cartControllers.OrderedItem{ProductID: item.Ref(), Quantity: item.Quantity})
	}
	if _, err := cartControllers.Reconcile(db, req.UserID, orderedItems); err != nil {
		log.Printf("⚠️ cart reconciliation failed for user %s: %v", req.UserID, err)
	}
	if err := deps.Events.OrderPlaced(ctx, &order); err != nil {
		log.Printf("⚠️ order-placed event failed for %s: %v", order.OrderRef, err)
	}
	if deps.Mailer != nil {
		if err := deps.Mailer.SendOrderConfirmation(&order); err != nil {
			log.Printf("⚠️ order confirmation email failed for %s: %v", order.OrderRef, err)
		}
	}

	return &order, degraded, nil
}

// -------- Handlers --------

// POST /orders/place
func PlaceOrderHandler(db *gorm.DB, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, degraded, err := CreateOrder(c.Request.Context(), db, deps, req)
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}

		resp := gin.H{"message": "Order placed successfully", "order_id": order.ID, "order_ref": order.OrderRef}
		if len(degraded) > 0 {
			resp["degraded_lines"] = degraded
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /seller/orders — orders containing at least one of the seller's
// lines, with items narrowed to that seller.
func GetSellerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerVal, exists := c.Get("user_id")
		seller, ok := sellerVal.(string)
		if !exists || !ok || seller == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Preload("Items", "seller_id = ?", seller).
			Joins("JOIN order_items oi ON oi.order_id = orders.id").
			Where("oi.seller_id = ?", seller).
			Group("orders.id").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// findOrder fetches an order by numeric id or by order_ref. The two forms
// are disambiguated up front: binding a non-numeric ref against the id
// column would fail to encode on postgres.
func findOrder(db *gorm.DB, ref string) (*models.Order, error) {
	query := db.Preload("Items")
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("order_ref = ?", ref)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GET /orders/:orderID — accepts a numeric id or an order_ref
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		order, err := findOrder(db, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if !order.Status.CanTransitionTo(newStatus) {
			c.JSON(http.StatusConflict, gin.H{"error": "cannot transition from " + string(order.Status) + " to " + string(newStatus)})
			return
		}
		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// PUT /orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("payment_status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// PUT /orders/:orderID/cancel
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
			c.JSON(http.StatusConflict, gin.H{"error": "order can no longer be cancelled"})
			return
		}
		if err := db.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
	}
}
