package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductModel struct {
	ID        string          `gorm:"primaryKey;type:uuid"`
	ShopID    string          `gorm:"type:uuid;index"`
	SellerID  string          `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock     int32           `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

type CartItemModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	UserID    string `gorm:"type:uuid;not null;index"`
	ProductID string `gorm:"type:uuid;not null"`
	Quantity  int32  `gorm:"not null"`
	CreatedAt time.Time
}

func (CartItemModel) TableName() string {
	return "cart_items"
}
