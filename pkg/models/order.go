package models

import (
	"time"
)

type Order struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"type:varchar(36);not null;index" json:"userId"`
	AddressID   string    `gorm:"type:varchar(36);not null" json:"addressId"`
	TotalAmount float64   `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Status      string    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PaymentID   string    `gorm:"type:varchar(64)" json:"paymentId"`
	OrderDate   time.Time `gorm:"autoCreateTime" json:"orderDate"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem.Price is a snapshot of the product's effective price at the
// moment the order was placed. Later product price changes never alter it.
type OrderItem struct {
	ID        string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID   string  `gorm:"type:varchar(36);not null;index" json:"orderId"`
	ProductID string  `gorm:"type:varchar(36);not null" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderSummary is an order joined with its shipping address, as returned by
// the order history endpoints.
type OrderSummary struct {
	Order
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode,omitempty"`
}

// OrderItemDetail is an order item joined with the product's display fields.
type OrderItemDetail struct {
	OrderItem
	Name   string `json:"name"`
	Images string `json:"-"`
}
