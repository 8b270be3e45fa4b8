package models

import "time"

// Seller is a marketplace tenant. New sellers wait for admin approval
// before their products are visible to buyers.
type Seller struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `json:"phone"`
	Approved  bool      `gorm:"default:false" json:"approved"`
	Products  []Product `gorm:"foreignKey:SellerID" json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
