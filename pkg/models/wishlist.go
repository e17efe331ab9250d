package models

import (
	"time"
)

type WishlistItem struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	ProductID string    `gorm:"type:varchar(36);not null;index" json:"productId"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

func (WishlistItem) TableName() string {
	return "wishlist"
}

// WishlistDetail is a wishlist row joined with the product's display fields.
type WishlistDetail struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId"`
	AddedAt       time.Time `json:"addedAt"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discountPrice"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	Images        string    `json:"-"`
}
