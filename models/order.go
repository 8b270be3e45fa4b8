package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (marketplace flow)
	OrderStatusPending    OrderStatus = "PENDING"    // Order placed, awaiting processing
	OrderStatusProcessing OrderStatus = "PROCESSING" // Accepted and being prepared
	OrderStatusShipped    OrderStatus = "SHIPPED"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "DELIVERED"  // Buyer received the items
	OrderStatusCancelled  OrderStatus = "CANCELLED"  // Cancelled before delivery

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Terminal reports whether no further status transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo enforces PENDING → PROCESSING → SHIPPED → DELIVERED,
// with CANCELLED reachable from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing
	case OrderStatusProcessing:
		return next == OrderStatusShipped
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}

// BillingDetails is captured once at checkout and kept on the order.
type BillingDetails struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `gorm:"embedded" json:"address"`
}

type Order struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OrderRef      string         `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID        string         `gorm:"index;not null" json:"user_id"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Billing       BillingDetails `gorm:"embedded;embeddedPrefix:billing_" json:"billing"`
	CouponCode    string         `json:"coupon_code"`
	Subtotal      float64        `json:"subtotal"`
	Discount      float64        `json:"discount"`
	TotalAmount   float64        `json:"total_amount"`
	PaymentMethod string         `json:"payment_method"` // e.g. "card", "cod"
	PaymentStatus PaymentStatus  `gorm:"type:VARCHAR(20);default:'PENDING'" json:"payment_status"`
	Status        OrderStatus    `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// OrderItem is an enriched line item: seller id and price come from the
// catalog at placement time, not from the client.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	SellerID  string  `gorm:"index" json:"seller_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	ImageLink string  `json:"image_link"`
}
