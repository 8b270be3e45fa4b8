package models

import (
	"time"

	"gorm.io/gorm"
)

type CommissionFlag string
type CommissionType string

const (
	CommissionEnabled  CommissionFlag = "Yes"
	CommissionDisabled CommissionFlag = "No"

	CommissionPercentage CommissionType = "percentage"
	CommissionFixed      CommissionType = "fixed"
)

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    string  `gorm:"index;not null" json:"seller_id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	// FinalPrice is the commission-adjusted price the buyer actually pays.
	// Zero means no commission price has been derived yet and Price applies.
	FinalPrice      float64        `json:"final_price"`
	Commission      CommissionFlag `gorm:"type:VARCHAR(3);default:'No'" json:"commission"`
	CommissionType  CommissionType `gorm:"type:VARCHAR(10);default:'percentage'" json:"commission_type"`
	CommissionValue float64        `json:"commission_value"`
	ImageLink       string         `json:"image_link"`
	Stock           int            `json:"stock"`
	Categories      []Category     `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
