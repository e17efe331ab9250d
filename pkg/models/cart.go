package models

import (
	"time"
)

type CartItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	ProductID string    `gorm:"type:varchar(36);not null;index" json:"productId"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

func (CartItem) TableName() string {
	return "cart"
}

// CartLine is a cart row joined with the owning product's current pricing.
// Prices here are live reads; the checkout flow is what turns them into
// snapshots.
type CartLine struct {
	ProductID     string   `json:"productId"`
	Quantity      int      `json:"quantity"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	Stock         int      `json:"stock"`
}

func (l *CartLine) EffectivePrice() float64 {
	if l.DiscountPrice != nil {
		return *l.DiscountPrice
	}
	return l.Price
}

// CartDetail is a cart row joined with the product's display fields, used by
// the cart page.
type CartDetail struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	Quantity      int       `json:"quantity"`
	AddedAt       time.Time `json:"addedAt"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discountPrice"`
	Stock         int       `json:"stock"`
	Images        string    `json:"-"`
}

func (d *CartDetail) EffectivePrice() float64 {
	if d.DiscountPrice != nil {
		return *d.DiscountPrice
	}
	return d.Price
}
