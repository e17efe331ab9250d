package models

import (
	"encoding/json"
	"time"
)

type Category struct {
	ID          string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Image       string  `gorm:"type:varchar(255)" json:"image"`
	ParentID    *string `gorm:"type:varchar(36)" json:"parentId"`
}

func (Category) TableName() string {
	return "categories"
}

type Product struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string    `gorm:"type:varchar(200);not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPrice *float64  `gorm:"type:decimal(10,2)" json:"discountPrice"`
	Stock         int       `gorm:"default:0" json:"stock"`
	CategoryID    string    `gorm:"type:varchar(36);index" json:"categoryId"`
	Images        string    `gorm:"type:text" json:"-"` // JSON array of image URLs
	Rating        float64   `gorm:"type:decimal(2,1);default:0" json:"rating"`
	ReviewCount   int       `gorm:"default:0" json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice is the discounted price when one is set, the base price
// otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// ImageList decodes the stored JSON image column. A missing or malformed
// column yields an empty list, never an error.
func (p *Product) ImageList() []string {
	return DecodeImages(p.Images)
}

func DecodeImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return []string{}
	}
	return images
}

// ProductWithCategory is a product joined with its category name, as returned
// by the catalog endpoints.
type ProductWithCategory struct {
	Product
	CategoryName string `json:"categoryName"`
}
