package models

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Code          string       `gorm:"uniqueIndex;not null" json:"code"` // stored upper-cased
	DiscountType  DiscountType `gorm:"type:VARCHAR(10);not null" json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	IsActive      bool         `gorm:"default:true" json:"is_active"`
	ValidFrom     time.Time    `json:"valid_from"`
	ValidUntil    time.Time    `json:"valid_until"`
	// UsageLimit nil means unlimited. UsedCount is incremented by the
	// payment-capture flow, never by validation.
	UsageLimit        *int      `json:"usage_limit"`
	UsedCount         int       `gorm:"default:0" json:"used_count"`
	MinOrderValue     *float64  `json:"min_order_value"`
	MaxDiscountAmount *float64  `json:"max_discount_amount"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
